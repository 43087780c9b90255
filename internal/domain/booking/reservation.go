package booking

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	// ReservationStatusPendingPayment means the slot is held while the
	// customer uploads a payment proof.
	ReservationStatusPendingPayment ReservationStatus = "pending_payment"
	ReservationStatusConfirmed      ReservationStatus = "confirmed"
	ReservationStatusCheckedIn      ReservationStatus = "checked_in"
	ReservationStatusCancelled      ReservationStatus = "cancelled"
	ReservationStatusExpired        ReservationStatus = "expired"
)

// IsTerminal reports whether the status admits no further transitions.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCheckedIn, ReservationStatusCancelled, ReservationStatusExpired:
		return true
	}
	return false
}

// Reservation holds a party's claim on a resource slot. It starts in
// pending_payment and must be confirmed before the hold expires.
type Reservation struct {
	shared.OrgAggregateRoot
	ResourceID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName  string            `gorm:"type:varchar(255);not null"`
	CustomerPhone string            `gorm:"type:varchar(64)"`
	PartySize     int               `gorm:"not null"`
	SlotStart     time.Time         `gorm:"not null;index"`
	SlotEnd       time.Time         `gorm:"not null"`
	Status        ReservationStatus `gorm:"type:varchar(32);not null;index"`
	// CheckInToken is the secret embedded in the QR code shown at the door.
	CheckInToken string `gorm:"type:varchar(64);not null;uniqueIndex"`
	// PaymentProofKey is the object storage key of the uploaded transfer
	// receipt, empty until the customer submits one.
	PaymentProofKey string `gorm:"type:varchar(512)"`
	// ExpiresAt bounds the pending_payment hold.
	ExpiresAt   time.Time  `gorm:"not null;index"`
	ConfirmedAt *time.Time `gorm:""`
	CheckedInAt *time.Time `gorm:""`
}

func (Reservation) TableName() string {
	return "reservations"
}

func newCheckInToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable; fall back to a UUID.
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(buf)
}

// NewReservation places a payment-pending hold on a slot. Capacity is checked
// by the application service against overlapping reservations; holdFor bounds
// how long the customer has to pay.
func NewReservation(orgID, resourceID uuid.UUID, customerName, customerPhone string, partySize int, slotStart, slotEnd time.Time, holdFor time.Duration) (*Reservation, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "customer name cannot be empty")
	}
	if partySize <= 0 {
		return nil, shared.NewDomainError("INVALID_PARTY_SIZE", "party size must be positive")
	}
	if !slotEnd.After(slotStart) {
		return nil, shared.NewDomainError("INVALID_SLOT", "slot end must be after slot start")
	}
	if holdFor <= 0 {
		return nil, shared.NewDomainError("INVALID_HOLD", "payment hold duration must be positive")
	}

	r := &Reservation{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ResourceID:       resourceID,
		CustomerName:     customerName,
		CustomerPhone:    strings.TrimSpace(customerPhone),
		PartySize:        partySize,
		SlotStart:        slotStart,
		SlotEnd:          slotEnd,
		Status:           ReservationStatusPendingPayment,
		CheckInToken:     newCheckInToken(),
		ExpiresAt:        time.Now().Add(holdFor),
	}
	r.AddDomainEvent(NewReservationCreatedEvent(r))
	return r, nil
}

// SubmitPaymentProof attaches the storage key of an uploaded receipt. Only a
// pending reservation accepts a proof; resubmitting replaces the key.
func (r *Reservation) SubmitPaymentProof(storageKey string) error {
	if r.Status != ReservationStatusPendingPayment {
		return shared.NewDomainError("INVALID_STATE",
			"payment proof can only be submitted while payment is pending")
	}
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		return shared.NewDomainError("INVALID_PROOF", "payment proof key cannot be empty")
	}
	r.PaymentProofKey = storageKey
	r.IncrementVersion()
	r.AddDomainEvent(NewPaymentProofSubmittedEvent(r))
	return nil
}

// Confirm moves a pending reservation to confirmed after staff verify the
// payment proof.
func (r *Reservation) Confirm() error {
	if r.Status != ReservationStatusPendingPayment {
		return shared.NewDomainError("INVALID_STATE", "only a pending reservation can be confirmed")
	}
	now := time.Now()
	r.Status = ReservationStatusConfirmed
	r.ConfirmedAt = &now
	r.IncrementVersion()
	r.AddDomainEvent(NewReservationConfirmedEvent(r))
	return nil
}

// CheckIn marks the party as arrived. The token presented at the door must
// match the one issued with the reservation.
func (r *Reservation) CheckIn(token string) error {
	if r.Status == ReservationStatusCheckedIn {
		// Check-in is idempotent for the matching token.
		if token == r.CheckInToken {
			return nil
		}
		return shared.NewDomainError("INVALID_TOKEN", "check-in token does not match")
	}
	if r.Status != ReservationStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "only a confirmed reservation can check in")
	}
	if token != r.CheckInToken {
		return shared.NewDomainError("INVALID_TOKEN", "check-in token does not match")
	}
	now := time.Now()
	r.Status = ReservationStatusCheckedIn
	r.CheckedInAt = &now
	r.IncrementVersion()
	r.AddDomainEvent(NewReservationCheckedInEvent(r))
	return nil
}

// Cancel voids a reservation that has not reached a terminal state.
func (r *Reservation) Cancel() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "reservation is already finished")
	}
	r.Status = ReservationStatusCancelled
	r.IncrementVersion()
	r.AddDomainEvent(NewReservationCancelledEvent(r))
	return nil
}

// Expire releases a pending hold whose payment window has passed. Expiring a
// reservation in any other state is a no-op so the sweeper can run blindly.
func (r *Reservation) Expire(now time.Time) bool {
	if r.Status != ReservationStatusPendingPayment || now.Before(r.ExpiresAt) {
		return false
	}
	r.Status = ReservationStatusExpired
	r.IncrementVersion()
	r.AddDomainEvent(NewReservationExpiredEvent(r))
	return true
}

// HoldsCapacity reports whether the reservation still occupies slot capacity.
func (r *Reservation) HoldsCapacity() bool {
	switch r.Status {
	case ReservationStatusPendingPayment, ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return true
	}
	return false
}

// Overlaps reports whether the reservation's slot intersects [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.SlotStart.Before(end) && start.Before(r.SlotEnd)
}
