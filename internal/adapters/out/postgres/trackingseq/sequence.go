// Package trackingseq draws tracking code numbers from a Postgres sequence.
package trackingseq

import (
	"context"

	"tracking/internal/pkg/pgerr"

	"gorm.io/gorm"
)

// SequenceName is created by the schema migration.
const SequenceName = "tracking_code_seq"

// PostgresSequence implements ports.TrackingCodeSequence with nextval. Postgres never
// hands out the same value twice, rolled back transactions included.
type PostgresSequence struct {
	db *gorm.DB
}

func NewPostgresSequence(db *gorm.DB) *PostgresSequence {
	return &PostgresSequence{db: db}
}

func (s *PostgresSequence) Next(ctx context.Context) (int64, error) {
	var next int64
	if err := s.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", SequenceName).Scan(&next).Error; err != nil {
		return 0, pgerr.Translate("draw tracking code", err)
	}
	return next, nil
}
