// Package queries contains read operations for retrieving parcel state.
// Queries go straight to the database and never write.
package queries

import (
	"database/sql"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelSummary is a parcel together with its latest tracking event and the
// name of the branch it was booked at.
type ParcelSummary struct {
	ID           kernel.UUID
	TrackingCode kernel.TrackingCode
	CustomerID   parcel.CustomerID
	BranchID     parcel.BranchID
	BranchName   string
	Weight       parcel.Weight
	ServiceType  parcel.ServiceType
	BookedAt     time.Time
	Status       parcel.Status
	Location     string
	LastUpdate   time.Time
}

// TrackingEventView is one ledger entry as shown on the tracking page.
type TrackingEventView struct {
	ID               parcel.EventID
	Status           parcel.Status
	Location         string
	UpdateTime       time.Time
	ActorID          *int64
	RecipientName    string
	RecipientContact string
}

// summarySelect reads each parcel once and joins its newest event, so every parcel
// yields exactly one row. A parcel without events falls back to its cached stage.
const summarySelect = `
	SELECT
		p.id,
		p.tracking_code,
		p.customer_id,
		p.branch_id,
		COALESCE(b.name, '') AS branch_name,
		p.weight,
		p.service_type,
		p.booking_date,
		COALESCE(latest.status, p.stage) AS status,
		COALESCE(latest.location, '') AS location,
		COALESCE(latest.update_time, p.booking_date) AS last_update
	FROM parcels p
	LEFT JOIN branches b ON b.id = p.branch_id
	LEFT JOIN LATERAL (
		SELECT e.status, e.location, e.update_time
		FROM tracking_events e
		WHERE e.parcel_id = p.id
		ORDER BY e.id DESC
		LIMIT 1
	) latest ON TRUE`

const summaryOrder = `
	ORDER BY p.booking_date DESC, p.id DESC`

func scanSummaries(rows *sql.Rows) ([]ParcelSummary, error) {
	summaries := make([]ParcelSummary, 0)

	for rows.Next() {
		var (
			summary     ParcelSummary
			id          uuid.UUID
			code        string
			customerID  int64
			branchID    int64
			weight      decimal.Decimal
			serviceType string
			status      int16
		)

		err := rows.Scan(
			&id,
			&code,
			&customerID,
			&branchID,
			&summary.BranchName,
			&weight,
			&serviceType,
			&summary.BookedAt,
			&status,
			&summary.Location,
			&summary.LastUpdate,
		)
		if err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = parcelID

		trackingCode, codeErr := kernel.ParseTrackingCode(code)
		if codeErr != nil {
			return nil, codeErr
		}
		summary.TrackingCode = trackingCode

		w, weightErr := parcel.NewWeight(weight)
		if weightErr != nil {
			return nil, weightErr
		}
		summary.Weight = w

		summary.CustomerID = parcel.CustomerID(customerID)
		summary.BranchID = parcel.BranchID(branchID)
		summary.ServiceType = parcel.ServiceType(serviceType)
		summary.Status = parcel.Status(status)
		summary.BookedAt = summary.BookedAt.UTC()
		summary.LastUpdate = summary.LastUpdate.UTC()
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
