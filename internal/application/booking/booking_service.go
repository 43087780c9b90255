package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/booking"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/infrastructure/telemetry"
)

// ObjectStorageService is the storage surface the booking flow needs for
// payment proofs. Implemented by the infrastructure layer.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// IdempotencyStore guards operations that must run at most once. Acquire
// returns false when the key was already claimed within the TTL.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// ServiceConfig holds tunables for the booking flow.
type ServiceConfig struct {
	// PaymentHold bounds how long a pending reservation blocks capacity.
	PaymentHold time.Duration
	// ProofUploadExpiry is the lifetime of presigned proof upload URLs.
	ProofUploadExpiry time.Duration
	// CheckInDedupeTTL is how long a processed check-in token stays claimed.
	CheckInDedupeTTL time.Duration
	// ExpireBatchSize bounds how many holds one sweep releases.
	ExpireBatchSize int
}

// DefaultServiceConfig returns production defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PaymentHold:       30 * time.Minute,
		ProofUploadExpiry: 15 * time.Minute,
		CheckInDedupeTTL:  24 * time.Hour,
		ExpireBatchSize:   200,
	}
}

// BookingService handles resources, reservations, and the check-in flow.
type BookingService struct {
	resourceRepo    booking.ResourceRepository
	reservationRepo booking.ReservationRepository
	storage         ObjectStorageService
	idempotency     IdempotencyStore
	config          ServiceConfig
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	resourceRepo booking.ResourceRepository,
	reservationRepo booking.ReservationRepository,
	storage ObjectStorageService,
	idempotency IdempotencyStore,
	config ServiceConfig,
) *BookingService {
	return &BookingService{
		resourceRepo:    resourceRepo,
		reservationRepo: reservationRepo,
		storage:         storage,
		idempotency:     idempotency,
		config:          config,
	}
}

// CreateResource creates a bookable resource.
func (s *BookingService) CreateResource(ctx context.Context, orgID uuid.UUID, req CreateResourceRequest) (*ResourceResponse, error) {
	resource, err := booking.NewBookableResource(orgID, req.Name, req.Description, req.Capacity, req.SlotMinutes)
	if err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Save(ctx, resource); err != nil {
		return nil, err
	}
	return ToResourceResponse(resource), nil
}

// ListResources returns a page of the org's resources.
func (s *BookingService) ListResources(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]*ResourceResponse, int64, error) {
	page, err := s.resourceRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*ResourceResponse, len(page.Items))
	for i, r := range page.Items {
		out[i] = ToResourceResponse(r)
	}
	return out, page.Total, nil
}

// Availability walks one day of a resource in slot-sized steps and reports
// remaining capacity per slot. Pending holds count as reserved.
func (s *BookingService) Availability(ctx context.Context, orgID, resourceID uuid.UUID, day time.Time) ([]SlotAvailability, error) {
	resource, err := s.resourceRepo.FindByID(ctx, orgID, resourceID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	reservations, err := s.reservationRepo.FindOverlapping(ctx, orgID, resourceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slot := resource.SlotDuration()
	slots := make([]SlotAvailability, 0, int(24*time.Hour/slot))
	for start := dayStart; start.Add(slot).Before(dayEnd) || start.Add(slot).Equal(dayEnd); start = start.Add(slot) {
		end := start.Add(slot)
		reserved := 0
		for _, r := range reservations {
			if r.HoldsCapacity() && r.Overlaps(start, end) {
				reserved += r.PartySize
			}
		}
		available := resource.Capacity - reserved
		if available < 0 {
			available = 0
		}
		slots = append(slots, SlotAvailability{
			Start:     start,
			End:       end,
			Reserved:  reserved,
			Available: available,
		})
	}
	return slots, nil
}

// Reserve places a payment-pending hold on a slot, enforcing slot capacity
// against all reservations that still hold capacity.
func (s *BookingService) Reserve(ctx context.Context, orgID uuid.UUID, req ReserveRequest) (*ReservationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "reserve")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrResourceID, req.ResourceID.String(),
		"party_size", req.PartySize,
	)

	resource, err := s.resourceRepo.FindByID(ctx, orgID, req.ResourceID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !resource.Active {
		return nil, shared.NewDomainError("RESOURCE_INACTIVE", "this resource no longer accepts reservations")
	}

	slotEnd := req.SlotStart.Add(resource.SlotDuration())
	overlapping, err := s.reservationRepo.FindOverlapping(ctx, orgID, resource.ID, req.SlotStart, slotEnd)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	reserved := 0
	for _, r := range overlapping {
		if r.HoldsCapacity() {
			reserved += r.PartySize
		}
	}
	if !resource.HasRoom(reserved, req.PartySize) {
		return nil, shared.ErrCapacityExceeded
	}

	reservation, err := booking.NewReservation(orgID, resource.ID, req.CustomerName, req.CustomerPhone,
		req.PartySize, req.SlotStart, slotEnd, s.config.PaymentHold)
	if err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrReservationID, reservation.ID.String())
	return ToReservationResponse(reservation, true), nil
}

// proofKey builds the storage key for a reservation's payment proof.
func proofKey(orgID, reservationID uuid.UUID) string {
	return fmt.Sprintf("orgs/%s/payment-proofs/%s", orgID, reservationID)
}

// ProofUploadURL issues a presigned URL the customer uploads their transfer
// receipt to.
func (s *BookingService) ProofUploadURL(ctx context.Context, orgID, reservationID uuid.UUID, contentType string) (*ProofUploadResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != booking.ReservationStatusPendingPayment {
		return nil, shared.NewDomainError("INVALID_STATE", "reservation is not awaiting payment")
	}

	key := proofKey(orgID, reservationID)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.config.ProofUploadExpiry)
	if err != nil {
		return nil, err
	}
	return &ProofUploadResponse{UploadURL: url, StorageKey: key, ExpiresAt: expiresAt}, nil
}

// SubmitPaymentProof attaches an uploaded proof after verifying the object
// actually landed in storage.
func (s *BookingService) SubmitPaymentProof(ctx context.Context, orgID, reservationID uuid.UUID, req SubmitProofRequest) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("PROOF_MISSING", "no uploaded object found at the given key")
	}

	if err := reservation.SubmitPaymentProof(req.StorageKey); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return ToReservationResponse(reservation, false), nil
}

// Confirm marks a reservation paid after staff review the proof.
func (s *BookingService) Confirm(ctx context.Context, orgID, reservationID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	if err := reservation.Confirm(); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return ToReservationResponse(reservation, false), nil
}

// Cancel voids a reservation.
func (s *BookingService) Cancel(ctx context.Context, orgID, reservationID uuid.UUID) error {
	reservation, err := s.reservationRepo.FindByID(ctx, orgID, reservationID)
	if err != nil {
		return err
	}
	if err := reservation.Cancel(); err != nil {
		return err
	}
	return s.reservationRepo.Update(ctx, reservation)
}

// CheckIn processes a QR token scanned at the door. A dedupe key makes
// double scans of the same token return the already-checked-in reservation
// instead of racing.
func (s *BookingService) CheckIn(ctx context.Context, req CheckInRequest) (*ReservationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "check_in")
	defer span.End()

	reservation, err := s.reservationRepo.FindByToken(ctx, req.Token)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrReservationID, reservation.ID.String())

	fresh, err := s.idempotency.Acquire(ctx, "checkin:"+req.Token, s.config.CheckInDedupeTTL)
	if err != nil {
		return nil, err
	}
	if !fresh && reservation.Status == booking.ReservationStatusCheckedIn {
		return ToReservationResponse(reservation, false), nil
	}

	if err := reservation.CheckIn(req.Token); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return ToReservationResponse(reservation, false), nil
}

// ExpirePending releases payment holds whose window has closed. It is called
// periodically by the background sweeper and returns how many holds it freed.
func (s *BookingService) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	pending, err := s.reservationRepo.FindExpiredPending(ctx, now, s.config.ExpireBatchSize)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, r := range pending {
		if !r.Expire(now) {
			continue
		}
		if err := s.reservationRepo.Update(ctx, r); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// GetReservation fetches one reservation.
func (s *BookingService) GetReservation(ctx context.Context, orgID, reservationID uuid.UUID) (*ReservationResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, orgID, reservationID)
	if err != nil {
		return nil, err
	}
	return ToReservationResponse(reservation, false), nil
}
