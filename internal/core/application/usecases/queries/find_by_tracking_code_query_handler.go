package queries

import (
	"context"
	"database/sql"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// FindByTrackingCodeQueryHandler reads one parcel and its full ledger.
// Both reads run in one read-only transaction so the history and the latest
// status come from the same snapshot.
type FindByTrackingCodeQueryHandler struct {
	db       *gorm.DB
	settings Settings
}

func NewFindByTrackingCodeQueryHandler(db *gorm.DB, settings Settings) FindByTrackingCodeQueryHandler {
	return FindByTrackingCodeQueryHandler{db: db, settings: settings.withDefaults()}
}

// Handle returns errs.ObjectNotFoundError when no parcel carries the code.
func (h FindByTrackingCodeQueryHandler) Handle(
	ctx context.Context,
	query FindByTrackingCodeQuery,
) (FindByTrackingCodeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindByTrackingCodeQueryResponse{}, err
	}

	ctx, cancel := h.settings.bound(ctx)
	defer cancel()

	code, err := kernel.ParseTrackingCode(query.TrackingCode())
	if err != nil {
		return FindByTrackingCodeQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("parcel", query.TrackingCode(), err)
	}

	var response FindByTrackingCodeQueryResponse
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		summary, findErr := h.findParcel(tx, code)
		if findErr != nil {
			return findErr
		}

		history, historyErr := h.history(tx, summary.ID)
		if historyErr != nil {
			return historyErr
		}

		response = FindByTrackingCodeQueryResponse{Parcel: summary, History: history}
		return nil
	}, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return FindByTrackingCodeQueryResponse{}, pgerr.Translate("find parcel", err)
	}

	return response, nil
}

func (h FindByTrackingCodeQueryHandler) findParcel(tx *gorm.DB, code kernel.TrackingCode) (ParcelSummary, error) {
	rows, err := tx.Raw(summarySelect+`
	WHERE p.tracking_code = ?`, code.String()).Rows()
	if err != nil {
		return ParcelSummary{}, err
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return ParcelSummary{}, err
	}
	if len(summaries) == 0 {
		return ParcelSummary{}, errs.NewObjectNotFoundError("parcel", code.String())
	}
	return summaries[0], nil
}

func (h FindByTrackingCodeQueryHandler) history(tx *gorm.DB, parcelID kernel.UUID) ([]TrackingEventView, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			status,
			location,
			update_time,
			actor_id,
			recipient_name,
			recipient_contact
		FROM tracking_events
		WHERE parcel_id = ?
		ORDER BY id DESC
	`, parcelID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackingEventView, 0)
	for rows.Next() {
		var (
			event            TrackingEventView
			id               int64
			status           int16
			actorID          sql.NullInt64
			recipientName    sql.NullString
			recipientContact sql.NullString
		)

		err = rows.Scan(
			&id,
			&status,
			&event.Location,
			&event.UpdateTime,
			&actorID,
			&recipientName,
			&recipientContact,
		)
		if err != nil {
			return nil, err
		}

		event.ID = parcel.EventID(id)
		event.Status = parcel.Status(status)
		event.UpdateTime = event.UpdateTime.UTC()
		if actorID.Valid {
			actor := actorID.Int64
			event.ActorID = &actor
		}
		event.RecipientName = recipientName.String
		event.RecipientContact = recipientContact.String
		history = append(history, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
