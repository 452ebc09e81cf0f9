// Package http exposes the tracking core as a JSON API on echo.
//
// Routes:
//
//	POST /api/v1/parcels                         book a parcel (customer)
//	GET  /api/v1/parcels                         the customer's own parcels
//	GET  /api/v1/parcels/:code                   public tracking page
//	GET  /api/v1/admin/parcels?stage=            every parcel (staff)
//	POST /api/v1/admin/parcels/:code/status      record a status update (staff)
//	POST /api/v1/admin/parcels/:code/delivery    confirm delivery (staff)
//	GET  /health
//	GET  /metrics
//
// Routes under /api/v1 are checked against the OpenAPI document in package api.
package http

import (
	"context"
	"errors"
	"net/http"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

type (
	CreateParcelHandler interface {
		Handle(ctx context.Context, command commands.CreateParcelCommand) (kernel.TrackingCode, error)
	}

	RecordStatusUpdateHandler interface {
		Handle(ctx context.Context, command commands.RecordStatusUpdateCommand) (parcel.EventID, error)
	}

	ConfirmDeliveryHandler interface {
		Handle(ctx context.Context, command commands.ConfirmDeliveryCommand) (parcel.EventID, error)
	}

	FindByTrackingCodeHandler interface {
		Handle(
			ctx context.Context,
			query queries.FindByTrackingCodeQuery,
		) (queries.FindByTrackingCodeQueryResponse, error)
	}

	ListCustomerParcelsHandler interface {
		Handle(ctx context.Context, query queries.ListCustomerParcelsQuery) ([]queries.ParcelSummary, error)
	}

	ListAllParcelsHandler interface {
		Handle(ctx context.Context, query queries.ListAllParcelsQuery) ([]queries.ParcelSummary, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler       CreateParcelHandler
	recordStatusUpdateHandler RecordStatusUpdateHandler
	confirmDeliveryHandler    ConfirmDeliveryHandler

	// Query handlers
	findByTrackingCodeHandler  FindByTrackingCodeHandler
	listCustomerParcelsHandler ListCustomerParcelsHandler
	listAllParcelsHandler      ListAllParcelsHandler

	openapi *OpenAPIValidator
	metrics http.Handler
	logger  *log.Entry
}

func NewServer(
	createParcelHandler CreateParcelHandler,
	recordStatusUpdateHandler RecordStatusUpdateHandler,
	confirmDeliveryHandler ConfirmDeliveryHandler,
	findByTrackingCodeHandler FindByTrackingCodeHandler,
	listCustomerParcelsHandler ListCustomerParcelsHandler,
	listAllParcelsHandler ListAllParcelsHandler,
	openapi *OpenAPIValidator,
	metrics http.Handler,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Server{
		createParcelHandler:        createParcelHandler,
		recordStatusUpdateHandler:  recordStatusUpdateHandler,
		confirmDeliveryHandler:     confirmDeliveryHandler,
		findByTrackingCodeHandler:  findByTrackingCodeHandler,
		listCustomerParcelsHandler: listCustomerParcelsHandler,
		listAllParcelsHandler:      listAllParcelsHandler,
		openapi:                    openapi,
		metrics:                    metrics,
		logger:                     logger.WithField("component", "http"),
	}
}

// NewEcho builds the echo instance with validation, recovery, access logging and all routes.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(AccessLog(s.logger))

	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	// Identity is checked before the document so a missing identity wins over a bad body.
	api := e.Group("/api/v1")
	api.POST("/parcels", s.CreateParcel,
		s.requireIdentity(HeaderCustomerID, "book a parcel"), s.validateRequest)
	api.GET("/parcels", s.ListCustomerParcels,
		s.requireIdentity(HeaderCustomerID, "list parcels"), s.validateRequest)
	api.GET("/parcels/:code", s.TrackParcel, s.validateRequest)

	admin := api.Group("/admin")
	admin.GET("/parcels", s.ListAllParcels,
		s.requireIdentity(HeaderStaffID, "list all parcels"), s.validateRequest)
	admin.POST("/parcels/:code/status", s.RecordStatusUpdate,
		s.requireIdentity(HeaderStaffID, "record a status update"), s.validateRequest)
	admin.POST("/parcels/:code/delivery", s.ConfirmDelivery,
		s.requireIdentity(HeaderStaffID, "confirm delivery"), s.validateRequest)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(c echo.Context) error {
	customerID := identity(c, HeaderCustomerID)

	var request CreateParcelRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	if err := c.Validate(&request); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateParcelCommand(customerID, request.BranchID, request.WeightKg, request.ServiceType)
	if err != nil {
		return s.writeError(c, err)
	}

	code, err := s.createParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/parcels/"+code.String())
	return c.JSON(http.StatusCreated, CreateParcelResponse{TrackingCode: code.String()})
}

// ListCustomerParcels handles GET /api/v1/parcels.
func (s *Server) ListCustomerParcels(c echo.Context) error {
	query, err := queries.NewListCustomerParcelsQuery(identity(c, HeaderCustomerID))
	if err != nil {
		return s.writeError(c, err)
	}

	summaries, err := s.listCustomerParcelsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toParcelResponses(summaries, false))
}

// TrackParcel handles GET /api/v1/parcels/:code. No identity is required.
func (s *Server) TrackParcel(c echo.Context) error {
	query, err := queries.NewFindByTrackingCodeQuery(c.Param("code"))
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.findByTrackingCodeHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toTrackingResponse(result))
}

// ListAllParcels handles GET /api/v1/admin/parcels.
func (s *Server) ListAllParcels(c echo.Context) error {
	query, err := queries.NewListAllParcelsQuery(c.QueryParam("stage"))
	if err != nil {
		return s.writeError(c, err)
	}

	summaries, err := s.listAllParcelsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toParcelResponses(summaries, true))
}

// RecordStatusUpdate handles POST /api/v1/admin/parcels/:code/status. The command reports a
// missing staff identity together with body errors, so 403 still wins without the middleware.
func (s *Server) RecordStatusUpdate(c echo.Context) error {
	var request StatusUpdateRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewRecordStatusUpdateCommand(
		c.Param("code"), request.Location, request.Status, identity(c, HeaderStaffID))
	if err = errors.Join(err, c.Validate(&request)); err != nil {
		return s.writeError(c, err)
	}

	eventID, err := s.recordStatusUpdateHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, EventCreatedResponse{EventID: int64(eventID)})
}

// ConfirmDelivery handles POST /api/v1/admin/parcels/:code/delivery.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	var request DeliveryRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewConfirmDeliveryCommand(
		c.Param("code"), request.RecipientName, request.RecipientContact, identity(c, HeaderStaffID))
	if err = errors.Join(err, c.Validate(&request)); err != nil {
		return s.writeError(c, err)
	}

	eventID, err := s.confirmDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, EventCreatedResponse{EventID: int64(eventID)})
}
