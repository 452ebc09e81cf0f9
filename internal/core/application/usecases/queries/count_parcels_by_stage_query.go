package queries

import (
	"context"
	"errors"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrCountParcelsByStageQueryIsNotConstructed = errors.New(
	"CountParcelsByStageQuery must be created via NewCountParcelsByStageQuery constructor",
)

// CountParcelsByStageQuery counts parcels per cached stage for the stage gauges.
type CountParcelsByStageQuery struct {
	guard guard.ConstructorGuard
}

func NewCountParcelsByStageQuery() CountParcelsByStageQuery {
	return CountParcelsByStageQuery{guard: guard.NewConstructorGuard()}
}

func (q CountParcelsByStageQuery) Validate() error {
	return q.guard.Validate(ErrCountParcelsByStageQueryIsNotConstructed)
}

type CountParcelsByStageQueryHandler struct {
	db       *gorm.DB
	settings Settings
}

func NewCountParcelsByStageQueryHandler(db *gorm.DB, settings Settings) CountParcelsByStageQueryHandler {
	return CountParcelsByStageQueryHandler{db: db, settings: settings.withDefaults()}
}

// Handle returns a count for every known status, zero included.
func (h CountParcelsByStageQueryHandler) Handle(
	ctx context.Context,
	query CountParcelsByStageQuery,
) (map[parcel.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.settings.bound(ctx)
	defer cancel()

	var rows []struct {
		Stage int16
		Total int64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT stage, COUNT(*) AS total
		FROM parcels
		GROUP BY stage
	`).Scan(&rows).Error
	if err != nil {
		return nil, pgerr.Translate("count parcels by stage", err)
	}

	counts := map[parcel.Status]int64{
		parcel.Booked:    0,
		parcel.InTransit: 0,
		parcel.Delivered: 0,
	}
	for _, row := range rows {
		counts[parcel.Status(row.Stage)] = row.Total
	}
	return counts, nil
}
