package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// BookableResource is something a customer can reserve a slot on, like a
// grooming table, a court, or a tour departure. Capacity is the number of
// guests a single slot can hold across all reservations.
type BookableResource struct {
	shared.OrgAggregateRoot
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Capacity    int    `gorm:"not null" json:"capacity"`
	SlotMinutes int    `gorm:"not null" json:"slot_minutes"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}

func (BookableResource) TableName() string {
	return "bookable_resources"
}

// NewBookableResource creates an active resource.
func NewBookableResource(orgID uuid.UUID, name, description string, capacity, slotMinutes int) (*BookableResource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_RESOURCE_NAME", "resource name cannot be empty")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "capacity must be positive")
	}
	if slotMinutes <= 0 {
		return nil, shared.NewDomainError("INVALID_SLOT_LENGTH", "slot length must be positive")
	}
	return &BookableResource{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Name:             name,
		Description:      strings.TrimSpace(description),
		Capacity:         capacity,
		SlotMinutes:      slotMinutes,
		Active:           true,
	}, nil
}

// SlotDuration returns the slot length as a duration.
func (r *BookableResource) SlotDuration() time.Duration {
	return time.Duration(r.SlotMinutes) * time.Minute
}

// Deactivate stops new reservations without touching existing ones.
func (r *BookableResource) Deactivate() {
	if !r.Active {
		return
	}
	r.Active = false
	r.IncrementVersion()
}

// HasRoom reports whether partySize more guests fit in a slot that already
// holds reserved guests.
func (r *BookableResource) HasRoom(reserved, partySize int) bool {
	return reserved+partySize <= r.Capacity
}
