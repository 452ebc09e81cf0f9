package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/parcel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var centralBranch = ports.Branch{ID: 1, Name: "Central Branch", Active: true}

func newCreateParcelCommand(t *testing.T) commands.CreateParcelCommand {
	t.Helper()
	cmd, err := commands.NewCreateParcelCommand(42, 1, decimal.RequireFromString("2.5"), "Express")
	require.NoError(t, err)
	return cmd
}

type bookingMocks struct {
	uow       *MockUoW
	repo      *MockParcelRepository
	ledger    *MockTrackingLedger
	sequence  *MockSequence
	directory *MockBranchDirectory
}

func newBookingMocks() bookingMocks {
	return bookingMocks{
		uow:       new(MockUoW),
		repo:      new(MockParcelRepository),
		ledger:    new(MockTrackingLedger),
		sequence:  new(MockSequence),
		directory: new(MockBranchDirectory),
	}
}

func (m bookingMocks) assert(t *testing.T) {
	m.uow.AssertExpectations(t)
	m.repo.AssertExpectations(t)
	m.ledger.AssertExpectations(t)
	m.sequence.AssertExpectations(t)
	m.directory.AssertExpectations(t)
}

// expectBooking wires one full booking attempt. addErr aborts it after the insert.
func (m bookingMocks) expectBooking(seq int64, addErr error) {
	calls := []*mock.Call{
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.uow.On("BranchDirectory").Return(m.directory).Once(),
		m.directory.On("Get", mock.Anything, parcel.BranchID(1)).Return(centralBranch, nil).Once(),
		m.uow.On("TrackingCodeSequence").Return(m.sequence).Once(),
		m.sequence.On("Next", mock.Anything).Return(seq, nil).Once(),
		m.uow.On("ParcelRepository").Return(m.repo).Once(),
		m.repo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(addErr).Once(),
	}
	if addErr == nil {
		calls = append(calls,
			m.uow.On("TrackingLedger").Return(m.ledger).Once(),
			m.ledger.On("Append", mock.Anything, mock.AnythingOfType("*parcel.TrackingEvent")).
				Return(parcel.EventID(seq), nil).Once(),
			m.repo.On("UpdateStage", mock.Anything, mock.AnythingOfType("*parcel.Parcel"), parcel.EventID(0)).
				Return(nil).Once(),
			m.uow.On("Commit", mock.Anything).Return(nil).Once(),
		)
	}
	calls = append(calls, m.uow.On("Rollback", mock.Anything).Return(nil).Once())
	mock.InOrder(calls...)
}

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	m := newBookingMocks()
	m.expectBooking(1, nil)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(m.uow).Once()

	observer := new(recordingObserver)
	h := commands.NewCreateParcelCommandHandler(factory, testSettings(observer))
	code, err := h.Handle(ctx, newCreateParcelCommand(t))
	require.NoError(t, err)

	assert.Equal(t, "T0001", code.String())
	assert.Equal(t, []parcel.ServiceType{parcel.Express}, observer.booked)
	assert.Empty(t, observer.retried)

	appended := m.ledger.Calls[0].Arguments.Get(1).(*parcel.TrackingEvent)
	assert.Equal(t, parcel.Booked, appended.Status())
	assert.Equal(t, "Central Branch", appended.Location().String())
	assert.Equal(t, fixedNow, appended.UpdateTime())
	assert.Nil(t, appended.ActorID())

	added := m.repo.Calls[0].Arguments.Get(1).(*parcel.Parcel)
	assert.Equal(t, parcel.Booked, added.Stage())
	assert.Equal(t, parcel.EventID(1), added.LastEventID())

	m.assert(t)
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockBookingUoWFactory)
	h := commands.NewCreateParcelCommandHandler(factory, testSettings(nil))

	_, err := h.Handle(t.Context(), commands.CreateParcelCommand{})
	require.ErrorIs(t, err, commands.ErrCreateParcelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateParcelCommandHandler_Handle_BranchRejected(t *testing.T) {
	testCases := []struct {
		name   string
		branch ports.Branch
		err    error
	}{
		{"unknown", ports.Branch{}, errs.NewObjectNotFoundError("branch", 1)},
		{"inactive", ports.Branch{ID: 1, Name: "Airport Cargo Desk", Active: false}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newBookingMocks()
			mock.InOrder(
				m.uow.On("Begin", mock.Anything).Return(nil).Once(),
				m.uow.On("BranchDirectory").Return(m.directory).Once(),
				m.directory.On("Get", mock.Anything, parcel.BranchID(1)).Return(tc.branch, tc.err).Once(),
				m.uow.On("Rollback", mock.Anything).Return(nil).Once(),
			)

			factory := new(MockBookingUoWFactory)
			factory.On("Create").Return(m.uow).Once()

			observer := new(recordingObserver)
			h := commands.NewCreateParcelCommandHandler(factory, testSettings(observer))
			_, err := h.Handle(t.Context(), newCreateParcelCommand(t))

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.True(t, errs.IsValidation(err))
			assert.Equal(t, []string{"create parcel"}, observer.failed)
			m.assert(t)
		})
	}
}

func TestCreateParcelCommandHandler_Handle_BeginError(t *testing.T) {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateParcelCommandHandler(factory, testSettings(nil))
	_, err := h.Handle(t.Context(), newCreateParcelCommand(t))

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_RetriesCollidingCode(t *testing.T) {
	first := newBookingMocks()
	first.expectBooking(1, errs.NewConflictError("tracking code T0001"))

	second := newBookingMocks()
	second.expectBooking(2, nil)

	factory := new(MockBookingUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(first.uow).Once(),
		factory.On("Create").Return(second.uow).Once(),
	)

	observer := new(recordingObserver)
	h := commands.NewCreateParcelCommandHandler(factory, testSettings(observer))
	code, err := h.Handle(t.Context(), newCreateParcelCommand(t))
	require.NoError(t, err)

	assert.Equal(t, "T0002", code.String())
	assert.Equal(t, []string{"create parcel"}, observer.retried)
	first.assert(t)
	second.assert(t)
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_Exhausted(t *testing.T) {
	factory := new(MockBookingUoWFactory)
	attempts := make([]bookingMocks, 0, 3)
	for i := range 3 {
		m := newBookingMocks()
		m.expectBooking(int64(i+1), errs.NewConflictError("tracking code"))
		factory.On("Create").Return(m.uow).Once()
		attempts = append(attempts, m)
	}

	observer := new(recordingObserver)
	h := commands.NewCreateParcelCommandHandler(factory, testSettings(observer))
	_, err := h.Handle(t.Context(), newCreateParcelCommand(t))

	require.ErrorIs(t, err, errs.ErrExhausted)
	var exhausted *errs.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Len(t, observer.retried, 3)
	assert.Empty(t, observer.booked)

	for _, m := range attempts {
		m.assert(t)
	}
	factory.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_SlowStore(t *testing.T) {
	m := newBookingMocks()
	mock.InOrder(
		m.uow.On("Begin", mock.Anything).Return(nil).Once(),
		m.uow.On("BranchDirectory").Return(m.directory).Once(),
		m.directory.On("Get", mock.Anything, parcel.BranchID(1)).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(ports.Branch{}, errors.New("canceling statement")).Once(),
		m.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(m.uow).Once()

	settings := testSettings(nil)
	settings.Retry.OperationTimeout = 20 * time.Millisecond

	h := commands.NewCreateParcelCommandHandler(factory, settings)
	_, err := h.Handle(t.Context(), newCreateParcelCommand(t))

	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	m.assert(t)
}
