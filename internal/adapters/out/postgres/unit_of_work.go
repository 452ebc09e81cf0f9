// Package postgres provides the GORM-based Unit of Work of the tracking core and
// the schema migration for its tables.
//
// Every command attempt gets its own unit of work. Repositories handed out after
// Begin share that transaction, so the parcel row, its ledger append and the cached
// stage update either all commit or all roll back:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	p, err := uow.ParcelRepository().LockByTrackingCode(ctx, code)
//	// ... domain transition, ledger append, stage update
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - A UnitOfWork is not safe for concurrent use; goroutines create their own
//   - Transitions on one parcel are serialized by the row lock taken in LockByTrackingCode
//   - Tracking codes come from a database sequence and never collide across instances
package postgres

import (
	"context"

	"tracking/internal/adapters/out/postgres/branchrepo"
	"tracking/internal/adapters/out/postgres/ledgerrepo"
	"tracking/internal/adapters/out/postgres/parcelrepo"
	"tracking/internal/pkg/pgerr"
	"tracking/internal/adapters/out/postgres/trackingseq"
	"tracking/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps a single GORM transaction. Repositories obtained before Begin
// run directly on the pool.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Translate("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open. Serialization
// failures detected at commit time surface as errs.ConflictError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Translate("commit transaction", err)
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, e.g. after
// Commit; handlers defer it and ignore that error.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn())
}

func (uow *GormUnitOfWork) TrackingLedger() ports.TrackingLedger {
	return ledgerrepo.NewGormTrackingLedger(uow.conn())
}

func (uow *GormUnitOfWork) TrackingCodeSequence() ports.TrackingCodeSequence {
	return trackingseq.NewPostgresSequence(uow.conn())
}

func (uow *GormUnitOfWork) BranchDirectory() ports.BranchDirectory {
	return branchrepo.NewGormBranchDirectory(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
