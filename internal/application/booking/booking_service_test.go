package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/growbro/backend/internal/domain/booking"
	"github.com/growbro/backend/internal/domain/shared"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Save(ctx context.Context, resource *booking.BookableResource) error {
	return m.Called(ctx, resource).Error(0)
}

func (m *MockResourceRepository) Update(ctx context.Context, resource *booking.BookableResource) error {
	return m.Called(ctx, resource).Error(0)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*booking.BookableResource, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookableResource), args.Error(1)
}

func (m *MockResourceRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[*booking.BookableResource], error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*booking.BookableResource]), args.Error(1)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Save(ctx context.Context, reservation *booking.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *booking.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*booking.Reservation, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByToken(ctx context.Context, token string) (*booking.Reservation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindOverlapping(ctx context.Context, orgID, resourceID uuid.UUID, start, end time.Time) ([]*booking.Reservation, error) {
	args := m.Called(ctx, orgID, resourceID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindExpiredPending(ctx context.Context, before time.Time, limit int) ([]*booking.Reservation, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByResource(ctx context.Context, orgID, resourceID uuid.UUID, filter shared.Filter) (*shared.Paginated[*booking.Reservation], error) {
	args := m.Called(ctx, orgID, resourceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*booking.Reservation]), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

type bookingServiceFixture struct {
	resourceRepo    *MockResourceRepository
	reservationRepo *MockReservationRepository
	storage         *MockObjectStorage
	idempotency     *MockIdempotencyStore
	service         *BookingService
	orgID           uuid.UUID
	resource        *booking.BookableResource
}

func newBookingServiceFixture(t *testing.T) *bookingServiceFixture {
	t.Helper()
	orgID := uuid.New()
	resource, err := booking.NewBookableResource(orgID, "Grooming Table A", "", 4, 60)
	require.NoError(t, err)

	f := &bookingServiceFixture{
		resourceRepo:    new(MockResourceRepository),
		reservationRepo: new(MockReservationRepository),
		storage:         new(MockObjectStorage),
		idempotency:     new(MockIdempotencyStore),
		orgID:           orgID,
		resource:        resource,
	}
	f.service = NewBookingService(f.resourceRepo, f.reservationRepo, f.storage, f.idempotency, DefaultServiceConfig())
	return f
}

func slotAt(hour int) time.Time {
	day := time.Now().AddDate(0, 0, 1)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func TestBookingServiceReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves within capacity and returns token", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		start := slotAt(10)

		f.resourceRepo.On("FindByID", mock.Anything, f.orgID, f.resource.ID).Return(f.resource, nil)
		f.reservationRepo.On("FindOverlapping", mock.Anything, f.orgID, f.resource.ID, start, start.Add(time.Hour)).
			Return([]*booking.Reservation{}, nil)
		f.reservationRepo.On("Save", mock.Anything, mock.AnythingOfType("*booking.Reservation")).Return(nil)

		resp, err := f.service.Reserve(ctx, f.orgID, ReserveRequest{
			ResourceID:   f.resource.ID,
			CustomerName: "Ada",
			PartySize:    2,
			SlotStart:    start,
		})
		require.NoError(t, err)
		assert.Equal(t, string(booking.ReservationStatusPendingPayment), resp.Status)
		assert.NotEmpty(t, resp.CheckInToken)
		assert.Equal(t, start.Add(time.Hour), resp.SlotEnd)
	})

	t.Run("rejects when the slot is full", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		start := slotAt(10)
		existing, err := booking.NewReservation(f.orgID, f.resource.ID, "Bea", "", 3,
			start, start.Add(time.Hour), time.Hour)
		require.NoError(t, err)

		f.resourceRepo.On("FindByID", mock.Anything, f.orgID, f.resource.ID).Return(f.resource, nil)
		f.reservationRepo.On("FindOverlapping", mock.Anything, f.orgID, f.resource.ID, start, start.Add(time.Hour)).
			Return([]*booking.Reservation{existing}, nil)

		_, err = f.service.Reserve(ctx, f.orgID, ReserveRequest{
			ResourceID:   f.resource.ID,
			CustomerName: "Ada",
			PartySize:    2,
			SlotStart:    start,
		})
		assert.ErrorIs(t, err, shared.ErrCapacityExceeded)
		f.reservationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancelled holds free capacity", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		start := slotAt(10)
		cancelled, err := booking.NewReservation(f.orgID, f.resource.ID, "Bea", "", 4,
			start, start.Add(time.Hour), time.Hour)
		require.NoError(t, err)
		require.NoError(t, cancelled.Cancel())

		f.resourceRepo.On("FindByID", mock.Anything, f.orgID, f.resource.ID).Return(f.resource, nil)
		f.reservationRepo.On("FindOverlapping", mock.Anything, f.orgID, f.resource.ID, start, start.Add(time.Hour)).
			Return([]*booking.Reservation{cancelled}, nil)
		f.reservationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err = f.service.Reserve(ctx, f.orgID, ReserveRequest{
			ResourceID:   f.resource.ID,
			CustomerName: "Ada",
			PartySize:    4,
			SlotStart:    start,
		})
		assert.NoError(t, err)
	})

	t.Run("inactive resource rejects reservations", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		f.resource.Deactivate()
		f.resourceRepo.On("FindByID", mock.Anything, f.orgID, f.resource.ID).Return(f.resource, nil)

		_, err := f.service.Reserve(ctx, f.orgID, ReserveRequest{
			ResourceID:   f.resource.ID,
			CustomerName: "Ada",
			PartySize:    1,
			SlotStart:    slotAt(10),
		})
		assert.Error(t, err)
	})
}

func TestBookingServicePaymentProof(t *testing.T) {
	ctx := context.Background()

	t.Run("upload url issued for pending reservation", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Hour)
		require.NoError(t, err)

		f.reservationRepo.On("FindByID", ctx, f.orgID, r.ID).Return(r, nil)
		expiresAt := time.Now().Add(15 * time.Minute)
		f.storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", 15*time.Minute).
			Return("https://s3.example/upload", expiresAt, nil)

		resp, err := f.service.ProofUploadURL(ctx, f.orgID, r.ID, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "https://s3.example/upload", resp.UploadURL)
		assert.Contains(t, resp.StorageKey, r.ID.String())
	})

	t.Run("submit verifies the object exists", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Hour)
		require.NoError(t, err)

		f.reservationRepo.On("FindByID", ctx, f.orgID, r.ID).Return(r, nil)
		f.storage.On("ObjectExists", ctx, "missing-key").Return(false, nil)

		_, err = f.service.SubmitPaymentProof(ctx, f.orgID, r.ID, SubmitProofRequest{StorageKey: "missing-key"})
		assert.Error(t, err)
		f.reservationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("submit attaches the key", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Hour)
		require.NoError(t, err)

		key := proofKey(f.orgID, r.ID)
		f.reservationRepo.On("FindByID", ctx, f.orgID, r.ID).Return(r, nil)
		f.storage.On("ObjectExists", ctx, key).Return(true, nil)
		f.reservationRepo.On("Update", ctx, r).Return(nil)

		resp, err := f.service.SubmitPaymentProof(ctx, f.orgID, r.ID, SubmitProofRequest{StorageKey: key})
		require.NoError(t, err)
		assert.Equal(t, key, resp.PaymentProofKey)
	})
}

func TestBookingServiceCheckIn(t *testing.T) {
	ctx := context.Background()

	confirmedReservation := func(t *testing.T, f *bookingServiceFixture) *booking.Reservation {
		t.Helper()
		r, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Hour)
		require.NoError(t, err)
		require.NoError(t, r.Confirm())
		return r
	}

	t.Run("checks in a confirmed reservation", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r := confirmedReservation(t, f)

		f.reservationRepo.On("FindByToken", mock.Anything, r.CheckInToken).Return(r, nil)
		f.idempotency.On("Acquire", mock.Anything, "checkin:"+r.CheckInToken, mock.Anything).Return(true, nil)
		f.reservationRepo.On("Update", mock.Anything, r).Return(nil)

		resp, err := f.service.CheckIn(ctx, CheckInRequest{Token: r.CheckInToken})
		require.NoError(t, err)
		assert.Equal(t, string(booking.ReservationStatusCheckedIn), resp.Status)
	})

	t.Run("duplicate scan returns checked-in state without writing", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r := confirmedReservation(t, f)
		require.NoError(t, r.CheckIn(r.CheckInToken))

		f.reservationRepo.On("FindByToken", mock.Anything, r.CheckInToken).Return(r, nil)
		f.idempotency.On("Acquire", mock.Anything, "checkin:"+r.CheckInToken, mock.Anything).Return(false, nil)

		resp, err := f.service.CheckIn(ctx, CheckInRequest{Token: r.CheckInToken})
		require.NoError(t, err)
		assert.Equal(t, string(booking.ReservationStatusCheckedIn), resp.Status)
		f.reservationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("pending reservation cannot check in", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		r, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Hour)
		require.NoError(t, err)

		f.reservationRepo.On("FindByToken", mock.Anything, r.CheckInToken).Return(r, nil)
		f.idempotency.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		_, err = f.service.CheckIn(ctx, CheckInRequest{Token: r.CheckInToken})
		assert.Error(t, err)
	})
}

func TestBookingServiceExpirePending(t *testing.T) {
	ctx := context.Background()

	t.Run("sweeps only overdue pending holds", func(t *testing.T) {
		f := newBookingServiceFixture(t)
		overdue, err := booking.NewReservation(f.orgID, f.resource.ID, "Ada", "", 2,
			slotAt(10), slotAt(11), time.Millisecond)
		require.NoError(t, err)

		now := overdue.ExpiresAt.Add(time.Second)
		f.reservationRepo.On("FindExpiredPending", ctx, now, mock.Anything).
			Return([]*booking.Reservation{overdue}, nil)
		f.reservationRepo.On("Update", ctx, overdue).Return(nil)

		count, err := f.service.ExpirePending(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.Equal(t, booking.ReservationStatusExpired, overdue.Status)
	})
}
