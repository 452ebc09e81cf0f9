package http

import (
	"context"
	"fmt"
	"net/http"

	"tracking/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator checks incoming requests against the API document before they reach a handler.
type OpenAPIValidator struct {
	router routers.Router
}

func NewOpenAPIValidator(ctx context.Context, document []byte) (*OpenAPIValidator, error) {
	doc, err := openapi3.NewLoader().LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return &OpenAPIValidator{router: router}, nil
}

// ValidateRequest reports a validation error when the request does not match its documented
// operation. Requests to undocumented paths are left to echo.
func (v *OpenAPIValidator) ValidateRequest(r *http.Request) error {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return nil
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options:    &openapi3filter.Options{MultiError: false},
	}
	if err = openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	return nil
}

// documented reports whether the API document describes the request's operation.
func (v *OpenAPIValidator) documented(r *http.Request) bool {
	_, _, err := v.router.FindRoute(r)
	return err == nil
}

// validateRequest runs the OpenAPI check as route middleware. It is a no-op without a validator.
func (s *Server) validateRequest(next echo.HandlerFunc) echo.HandlerFunc {
	if s.openapi == nil {
		return next
	}
	return func(c echo.Context) error {
		if err := s.openapi.ValidateRequest(c.Request()); err != nil {
			return s.writeError(c, err)
		}
		return next(c)
	}
}

// requireIdentity rejects requests without a usable identity header before the body is looked at.
func (s *Server) requireIdentity(header, operation string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity(c, header) == 0 {
				return s.writeError(c, errs.NewUnauthorizedError(operation, c.Request().Header.Get(header)))
			}
			return next(c)
		}
	}
}
