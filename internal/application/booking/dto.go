package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/booking"
)

// CreateResourceRequest is the payload for creating a bookable resource.
type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"required"`
	SlotMinutes int    `json:"slot_minutes" binding:"required"`
}

// ReserveRequest places a hold on a slot.
type ReserveRequest struct {
	ResourceID    uuid.UUID `json:"resource_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone"`
	PartySize     int       `json:"party_size" binding:"required"`
	SlotStart     time.Time `json:"slot_start" binding:"required"`
}

// SubmitProofRequest attaches an uploaded payment proof to a reservation.
type SubmitProofRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// CheckInRequest presents the QR token at the door.
type CheckInRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResourceResponse is the outward view of a bookable resource.
type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	SlotMinutes int       `json:"slot_minutes"`
	Active      bool      `json:"active"`
}

// SlotAvailability describes one slot of a resource's day.
type SlotAvailability struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Reserved  int       `json:"reserved"`
	Available int       `json:"available"`
}

// ReservationResponse is the outward view of a reservation. The check-in
// token is only included in the response to the creating request.
type ReservationResponse struct {
	ID              uuid.UUID  `json:"id"`
	ResourceID      uuid.UUID  `json:"resource_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone,omitempty"`
	PartySize       int        `json:"party_size"`
	SlotStart       time.Time  `json:"slot_start"`
	SlotEnd         time.Time  `json:"slot_end"`
	Status          string     `json:"status"`
	CheckInToken    string     `json:"check_in_token,omitempty"`
	PaymentProofKey string     `json:"payment_proof_key,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CheckedInAt     *time.Time `json:"checked_in_at,omitempty"`
}

// ProofUploadResponse returns a presigned upload target for a payment proof.
type ProofUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ToResourceResponse converts a domain resource to its response DTO.
func ToResourceResponse(r *booking.BookableResource) *ResourceResponse {
	return &ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		SlotMinutes: r.SlotMinutes,
		Active:      r.Active,
	}
}

// ToReservationResponse converts a domain reservation to its response DTO.
// The token is omitted unless includeToken is set.
func ToReservationResponse(r *booking.Reservation, includeToken bool) *ReservationResponse {
	resp := &ReservationResponse{
		ID:              r.ID,
		ResourceID:      r.ResourceID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		SlotStart:       r.SlotStart,
		SlotEnd:         r.SlotEnd,
		Status:          string(r.Status),
		PaymentProofKey: r.PaymentProofKey,
		ExpiresAt:       r.ExpiresAt,
		ConfirmedAt:     r.ConfirmedAt,
		CheckedInAt:     r.CheckedInAt,
	}
	if includeToken {
		resp.CheckInToken = r.CheckInToken
	}
	return resp
}
