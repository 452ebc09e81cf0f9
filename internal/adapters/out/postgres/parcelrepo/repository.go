package parcelrepo

import (
	"context"
	"errors"

	"tracking/internal/pkg/pgerr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add inserts a booked parcel. A taken tracking code surfaces as errs.ConflictError.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("tracking code "+dto.TrackingCode, err)
		}
		return pgerr.Translate("add parcel", err)
	}

	return nil
}

func (r *GormParcelRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx), code)
}

// LockByTrackingCode reads the parcel with SELECT ... FOR UPDATE. It only serializes
// writers when called inside a transaction.
func (r *GormParcelRepository) LockByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), code)
}

// UpdateStage writes the cached stage only if no other writer moved last_event_id
// since the parcel was read.
func (r *GormParcelRepository) UpdateStage(
	ctx context.Context,
	aggregate *parcel.Parcel,
	expectedLastEventID parcel.EventID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND last_event_id = ?", aggregate.ID().Bytes(), int64(expectedLastEventID)).
		Updates(map[string]any{
			"stage":         int16(aggregate.Stage()),
			"last_event_id": int64(aggregate.LastEventID()),
		})
	if result.Error != nil {
		return pgerr.Translate("update parcel stage", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("parcel " + aggregate.TrackingCode().String())
	}

	return nil
}

func (r *GormParcelRepository) get(db *gorm.DB, code kernel.TrackingCode) (*parcel.Parcel, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.Take(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", code.String())
		}
		return nil, pgerr.Translate("get parcel", err)
	}

	return toDomain(dto)
}
