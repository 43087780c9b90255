package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

const (
	EventReservationCreated    = "booking.reservation.created"
	EventPaymentProofSubmitted = "booking.reservation.payment_proof_submitted"
	EventReservationConfirmed  = "booking.reservation.confirmed"
	EventReservationCheckedIn  = "booking.reservation.checked_in"
	EventReservationCancelled  = "booking.reservation.cancelled"
	EventReservationExpired    = "booking.reservation.expired"
)

type ReservationCreatedEvent struct {
	shared.BaseDomainEvent
	ResourceID uuid.UUID `json:"resource_id"`
	PartySize  int       `json:"party_size"`
	SlotStart  time.Time `json:"slot_start"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func NewReservationCreatedEvent(r *Reservation) *ReservationCreatedEvent {
	return &ReservationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationCreated, "Reservation", r.ID, r.OrgID),
		ResourceID:      r.ResourceID,
		PartySize:       r.PartySize,
		SlotStart:       r.SlotStart,
		ExpiresAt:       r.ExpiresAt,
	}
}

type PaymentProofSubmittedEvent struct {
	shared.BaseDomainEvent
	StorageKey string `json:"storage_key"`
}

func NewPaymentProofSubmittedEvent(r *Reservation) *PaymentProofSubmittedEvent {
	return &PaymentProofSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentProofSubmitted, "Reservation", r.ID, r.OrgID),
		StorageKey:      r.PaymentProofKey,
	}
}

type ReservationConfirmedEvent struct {
	shared.BaseDomainEvent
}

func NewReservationConfirmedEvent(r *Reservation) *ReservationConfirmedEvent {
	return &ReservationConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationConfirmed, "Reservation", r.ID, r.OrgID),
	}
}

type ReservationCheckedInEvent struct {
	shared.BaseDomainEvent
}

func NewReservationCheckedInEvent(r *Reservation) *ReservationCheckedInEvent {
	return &ReservationCheckedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationCheckedIn, "Reservation", r.ID, r.OrgID),
	}
}

type ReservationCancelledEvent struct {
	shared.BaseDomainEvent
}

func NewReservationCancelledEvent(r *Reservation) *ReservationCancelledEvent {
	return &ReservationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationCancelled, "Reservation", r.ID, r.OrgID),
	}
}

type ReservationExpiredEvent struct {
	shared.BaseDomainEvent
}

func NewReservationExpiredEvent(r *Reservation) *ReservationExpiredEvent {
	return &ReservationExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReservationExpired, "Reservation", r.ID, r.OrgID),
	}
}
