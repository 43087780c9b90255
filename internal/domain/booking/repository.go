package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// ResourceRepository persists bookable resources.
type ResourceRepository interface {
	Save(ctx context.Context, resource *BookableResource) error
	Update(ctx context.Context, resource *BookableResource) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*BookableResource, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[*BookableResource], error)
}

// ReservationRepository persists reservations.
type ReservationRepository interface {
	Save(ctx context.Context, reservation *Reservation) error
	Update(ctx context.Context, reservation *Reservation) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Reservation, error)
	FindByToken(ctx context.Context, token string) (*Reservation, error)
	// FindOverlapping returns reservations on the resource that still hold
	// capacity and intersect [start, end).
	FindOverlapping(ctx context.Context, orgID, resourceID uuid.UUID, start, end time.Time) ([]*Reservation, error)
	// FindExpiredPending returns pending reservations whose payment window
	// closed before the given time.
	FindExpiredPending(ctx context.Context, before time.Time, limit int) ([]*Reservation, error)
	FindByResource(ctx context.Context, orgID, resourceID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Reservation], error)
}
