package http

import (
	"time"

	"tracking/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type CreateParcelRequest struct {
	BranchID    int64           `json:"branch_id" validate:"required,gt=0"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	ServiceType string          `json:"service_type" validate:"required,max=50"`
}

type CreateParcelResponse struct {
	TrackingCode string `json:"tracking_code"`
}

type StatusUpdateRequest struct {
	Status   string `json:"status" validate:"required"`
	Location string `json:"location" validate:"required,max=255"`
}

type DeliveryRequest struct {
	RecipientName    string `json:"recipient_name" validate:"required,max=100"`
	RecipientContact string `json:"recipient_contact" validate:"required,max=100"`
}

type EventCreatedResponse struct {
	EventID int64 `json:"event_id"`
}

type ParcelResponse struct {
	TrackingCode string    `json:"tracking_code"`
	CustomerID   int64     `json:"customer_id,omitempty"`
	BranchName   string    `json:"branch_name"`
	WeightKg     string    `json:"weight_kg"`
	ServiceType  string    `json:"service_type"`
	BookingDate  time.Time `json:"booking_date"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	LastUpdate   time.Time `json:"last_update"`
}

type TrackingEventResponse struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	Location      string    `json:"location"`
	UpdateTime    time.Time `json:"update_time"`
	RecipientName string    `json:"recipient_name,omitempty"`
}

type TrackingResponse struct {
	Parcel  ParcelResponse          `json:"parcel"`
	History []TrackingEventResponse `json:"history"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toParcelResponse hides the owning customer unless withCustomer is set.
func toParcelResponse(s queries.ParcelSummary, withCustomer bool) ParcelResponse {
	response := ParcelResponse{
		TrackingCode: s.TrackingCode.String(),
		BranchName:   s.BranchName,
		WeightKg:     s.Weight.String(),
		ServiceType:  s.ServiceType.String(),
		BookingDate:  s.BookedAt,
		Status:       s.Status.String(),
		Location:     s.Location,
		LastUpdate:   s.LastUpdate,
	}
	if withCustomer {
		response.CustomerID = int64(s.CustomerID)
	}
	return response
}

func toParcelResponses(summaries []queries.ParcelSummary, withCustomer bool) []ParcelResponse {
	response := make([]ParcelResponse, len(summaries))
	for i, s := range summaries {
		response[i] = toParcelResponse(s, withCustomer)
	}
	return response
}

// toTrackingResponse is the public tracking page: no actor ids and no recipient contact.
func toTrackingResponse(r queries.FindByTrackingCodeQueryResponse) TrackingResponse {
	history := make([]TrackingEventResponse, len(r.History))
	for i, event := range r.History {
		history[i] = TrackingEventResponse{
			ID:            int64(event.ID),
			Status:        event.Status.String(),
			Location:      event.Location,
			UpdateTime:    event.UpdateTime,
			RecipientName: event.RecipientName,
		}
	}
	return TrackingResponse{
		Parcel:  toParcelResponse(r.Parcel, false),
		History: history,
	}
}
