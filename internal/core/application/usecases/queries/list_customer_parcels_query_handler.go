package queries

import (
	"context"

	"tracking/internal/pkg/pgerr"

	"gorm.io/gorm"
)

// ListCustomerParcelsQueryHandler serves the customer dashboard, newest booking first.
type ListCustomerParcelsQueryHandler struct {
	db       *gorm.DB
	settings Settings
}

func NewListCustomerParcelsQueryHandler(db *gorm.DB, settings Settings) ListCustomerParcelsQueryHandler {
	return ListCustomerParcelsQueryHandler{db: db, settings: settings.withDefaults()}
}

func (h ListCustomerParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerParcelsQuery,
) ([]ParcelSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.settings.bound(ctx)
	defer cancel()

	rows, err := h.db.WithContext(ctx).Raw(summarySelect+`
	WHERE p.customer_id = ?`+summaryOrder, int64(query.CustomerID())).Rows()
	if err != nil {
		return nil, pgerr.Translate("list customer parcels", err)
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, pgerr.Translate("list customer parcels", err)
	}
	return summaries, nil
}
