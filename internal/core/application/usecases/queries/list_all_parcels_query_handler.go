package queries

import (
	"context"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

type ListAllParcelsQueryHandler struct {
	db       *gorm.DB
	settings Settings
}

func NewListAllParcelsQueryHandler(db *gorm.DB, settings Settings) ListAllParcelsQueryHandler {
	return ListAllParcelsQueryHandler{db: db, settings: settings.withDefaults()}
}

func (h ListAllParcelsQueryHandler) Handle(ctx context.Context, query ListAllParcelsQuery) ([]ParcelSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.settings.bound(ctx)
	defer cancel()

	sqlText := summarySelect
	args := make([]any, 0, 1)
	if query.Stage() != parcel.Unknown {
		sqlText += `
	WHERE COALESCE(latest.status, p.stage) = ?`
		args = append(args, int16(query.Stage()))
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText+summaryOrder, args...).Rows()
	if err != nil {
		return nil, pgerr.Translate("list parcels", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, pgerr.Translate("list parcels", err)
	}
	return summaries, nil
}
