package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/pgtest"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real Postgres.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow1.TrackingLedger())
	suite.NotNil(uow1.TrackingCodeSequence())
	suite.NotNil(uow1.BranchDirectory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "nested Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsParcelAndLedger() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	p := suite.bookInto(ctx, uow)
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.ParcelRepository().GetByTrackingCode(ctx, p.TrackingCode())
	suite.Require().NoError(err)
	suite.Equal(p.LastEventID(), stored.LastEventID())

	history, err := reader.TrackingLedger().History(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Len(history, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackLeavesNoTrace() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	p := suite.bookInto(ctx, uow)
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.ParcelRepository().GetByTrackingCode(ctx, p.TrackingCode())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	history, err := reader.TrackingLedger().History(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackingCodeSequence_NeverReissuesAfterRollback() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	first, err := uow.TrackingCodeSequence().Next(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	second, err := suite.factory.Create().TrackingCodeSequence().Next(ctx)
	suite.Require().NoError(err)

	suite.Equal(int64(1), first)
	suite.Equal(int64(2), second)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBranchDirectory_Seeded() {
	ctx := context.Background()
	directory := suite.factory.Create().BranchDirectory()

	branch, err := directory.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Central Branch", branch.Name)
	suite.True(branch.Active)

	inactive, err := directory.Get(ctx, 4)
	suite.Require().NoError(err)
	suite.False(inactive.Active)

	_, err = directory.Get(ctx, 404)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMigrate_IsIdempotent() {
	ctx := context.Background()

	suite.Require().NoError(postgres_adapter.Migrate(ctx, suite.database.DB))
	suite.Require().NoError(postgres_adapter.SeedBranches(ctx, suite.database.DB))
}

func (suite *UnitOfWorkIntegrationTestSuite) bookInto(ctx context.Context, uow ports.UnitOfWork) *parcel.Parcel {
	seq, err := uow.TrackingCodeSequence().Next(ctx)
	suite.Require().NoError(err)
	code, err := kernel.NewTrackingCode(seq)
	suite.Require().NoError(err)
	weight, err := parcel.WeightFromFloat(4)
	suite.Require().NoError(err)
	origin, err := kernel.NewLocation("Central Branch")
	suite.Require().NoError(err)

	p, booking, err := parcel.Book(kernel.NewUUID(), code, 1, 1, weight, parcel.Overnight, origin, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	id, err := uow.TrackingLedger().Append(ctx, booking)
	suite.Require().NoError(err)
	suite.Require().NoError(p.AcknowledgeEvent(id))
	suite.Require().NoError(uow.ParcelRepository().UpdateStage(ctx, p, 0))
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
