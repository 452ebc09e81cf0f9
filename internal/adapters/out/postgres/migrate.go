package postgres

import (
	"context"
	"fmt"

	"tracking/internal/adapters/out/postgres/branchrepo"
	"tracking/internal/adapters/out/postgres/ledgerrepo"
	"tracking/internal/adapters/out/postgres/parcelrepo"
	"tracking/internal/adapters/out/postgres/trackingseq"

	"gorm.io/gorm"
)

// schemaStatements complete what AutoMigrate cannot express. Every statement is idempotent.
var schemaStatements = []string{
	fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS %s START WITH 1 INCREMENT BY 1`, trackingseq.SequenceName),
	`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_tracking_events_parcel') THEN
		ALTER TABLE tracking_events
			ADD CONSTRAINT fk_tracking_events_parcel
			FOREIGN KEY (parcel_id) REFERENCES parcels(id) ON DELETE RESTRICT;
	END IF;
END $$`,
	`CREATE OR REPLACE FUNCTION tracking_events_append_only() RETURNS trigger AS $$
BEGIN
	RAISE EXCEPTION 'tracking_events is append-only';
END $$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS tracking_events_append_only ON tracking_events`,
	`CREATE TRIGGER tracking_events_append_only
	BEFORE UPDATE OR DELETE ON tracking_events
	FOR EACH ROW EXECUTE FUNCTION tracking_events_append_only()`,
}

// Migrate creates or upgrades the tracking schema: tables, the tracking code sequence,
// the ledger foreign key and the trigger keeping tracking_events append-only.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&branchrepo.BranchDTO{},
		&parcelrepo.ParcelDTO{},
		&ledgerrepo.TrackingEventDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, statement := range schemaStatements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migrate schema: %w", err)
			}
		}
		return nil
	})
}

// SeedBranches inserts the default branch directory without touching existing branches.
func SeedBranches(ctx context.Context, db *gorm.DB) error {
	return branchrepo.Seed(ctx, db, branchrepo.DefaultBranches())
}
