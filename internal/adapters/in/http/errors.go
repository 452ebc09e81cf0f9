package http

import (
	"errors"
	"net/http"

	"tracking/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// retryAfterSeconds is sent with 503 responses.
const retryAfterSeconds = "1"

// errorStatus maps the error taxonomy onto HTTP status codes. Unauthorized is checked
// first because a command may report it together with validation errors.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExhausted), errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	status := errorStatus(err)
	message := err.Error()

	switch status {
	case http.StatusServiceUnavailable:
		c.Response().Header().Set("Retry-After", retryAfterSeconds)
		message = "service is temporarily unavailable, retry later"
		s.logger.WithError(err).WithField("path", c.Path()).Warn("Request failed on a transient error")
	case http.StatusInternalServerError:
		message = "internal server error"
		s.logger.WithError(err).WithFields(log.Fields{
			"path":   c.Path(),
			"method": c.Request().Method,
		}).Error("Request failed")
	}

	return c.JSON(status, ErrorResponse{Code: status, Message: message})
}
