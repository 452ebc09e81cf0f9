package commands_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) LockByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) UpdateStage(ctx context.Context, p *parcel.Parcel, expected parcel.EventID) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

type MockTrackingLedger struct{ mock.Mock }

func (m *MockTrackingLedger) Append(ctx context.Context, event *parcel.TrackingEvent) (parcel.EventID, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(parcel.EventID), args.Error(1)
}

func (m *MockTrackingLedger) History(ctx context.Context, id kernel.UUID) ([]*parcel.TrackingEvent, error) {
	args := m.Called(ctx, id)
	events, _ := args.Get(0).([]*parcel.TrackingEvent)
	return events, args.Error(1)
}

func (m *MockTrackingLedger) Latest(ctx context.Context, id kernel.UUID) (*parcel.TrackingEvent, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*parcel.TrackingEvent)
	return event, args.Error(1)
}

func (m *MockTrackingLedger) LatestStatus(ctx context.Context, id kernel.UUID) (parcel.Status, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(parcel.Status), args.Error(1)
}

type MockSequence struct{ mock.Mock }

func (m *MockSequence) Next(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBranchDirectory struct{ mock.Mock }

func (m *MockBranchDirectory) Get(ctx context.Context, id parcel.BranchID) (ports.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Branch), args.Error(1)
}

// MockUoW satisfies both BookingUoW and ParcelUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) TrackingLedger() ports.TrackingLedger {
	args := m.Called()
	return args.Get(0).(ports.TrackingLedger)
}

func (m *MockUoW) TrackingCodeSequence() ports.TrackingCodeSequence {
	args := m.Called()
	return args.Get(0).(ports.TrackingCodeSequence)
}

func (m *MockUoW) BranchDirectory() ports.BranchDirectory {
	args := m.Called()
	return args.Get(0).(ports.BranchDirectory)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

// recordingObserver keeps every notification for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	booked   []parcel.ServiceType
	recorded []parcel.Status
	retried  []string
	failed   []string
}

func (o *recordingObserver) ParcelBooked(st parcel.ServiceType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.booked = append(o.booked, st)
}

func (o *recordingObserver) StatusRecorded(s parcel.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recorded = append(o.recorded, s)
}

func (o *recordingObserver) AttemptRetried(operation string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.retried = append(o.retried, operation)
}

func (o *recordingObserver) OperationFailed(operation string, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, operation)
}

func testSettings(observer commands.LifecycleObserver) commands.HandlerSettings {
	logger := log.New()
	logger.SetOutput(io.Discard)

	return commands.HandlerSettings{
		Retry: commands.RetryPolicy{
			MaxAttempts:      3,
			InitialDelay:     time.Millisecond,
			MaxDelay:         2 * time.Millisecond,
			BackoffFactor:    2,
			OperationTimeout: time.Second,
		},
		Clock:    func() time.Time { return fixedNow },
		Logger:   log.NewEntry(logger),
		Observer: observer,
	}
}

func trackingCode(t *testing.T, s string) kernel.TrackingCode {
	t.Helper()
	code, err := kernel.ParseTrackingCode(s)
	require.NoError(t, err)
	return code
}

func location(t *testing.T, s string) kernel.Location {
	t.Helper()
	l, err := kernel.NewLocation(s)
	require.NoError(t, err)
	return l
}

// restoredParcel builds a stored parcel T0001 at the given stage.
func restoredParcel(t *testing.T, stage parcel.Status, lastEventID parcel.EventID) *parcel.Parcel {
	t.Helper()
	weight, err := parcel.WeightFromFloat(2.5)
	require.NoError(t, err)

	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), trackingCode(t, "T0001"), 1, 1, weight, parcel.Express,
		fixedNow.Add(-time.Hour), stage, lastEventID,
	)
	require.NoError(t, err)
	return p
}
