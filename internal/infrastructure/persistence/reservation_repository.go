package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/booking"
	"github.com/growbro/backend/internal/domain/shared"
)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// capacityHoldingStatuses are the states that still block a slot
var capacityHoldingStatuses = []booking.ReservationStatus{
	booking.ReservationStatusPendingPayment,
	booking.ReservationStatusConfirmed,
	booking.ReservationStatusCheckedIn,
}

// Save creates a reservation
func (r *GormReservationRepository) Save(ctx context.Context, reservation *booking.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// Update persists a state change to a reservation
func (r *GormReservationRepository) Update(ctx context.Context, reservation *booking.Reservation) error {
	result := r.db.WithContext(ctx).
		Model(reservation).
		Where("org_id = ? AND version = ?", reservation.OrgID, reservation.Version-1).
		Select("status", "payment_proof_key", "confirmed_at", "checked_in_at", "version", "updated_at").
		Updates(*reservation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a reservation by ID within an org
func (r *GormReservationRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*booking.Reservation, error) {
	var reservation booking.Reservation
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// FindByToken finds a reservation by its check-in token. Tokens are globally
// unique so the lookup is deliberately not org-scoped; the check-in endpoint
// is public.
func (r *GormReservationRepository) FindByToken(ctx context.Context, token string) (*booking.Reservation, error) {
	var reservation booking.Reservation
	if err := r.db.WithContext(ctx).
		Where("check_in_token = ?", token).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// FindOverlapping returns capacity-holding reservations on the resource
// intersecting [start, end).
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, orgID, resourceID uuid.UUID, start, end time.Time) ([]*booking.Reservation, error) {
	var reservations []*booking.Reservation
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND resource_id = ? AND status IN ? AND slot_start < ? AND slot_end > ?",
			orgID, resourceID, capacityHoldingStatuses, end, start).
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindExpiredPending returns pending reservations whose payment window
// closed before the given time, oldest first.
func (r *GormReservationRepository) FindExpiredPending(ctx context.Context, before time.Time, limit int) ([]*booking.Reservation, error) {
	var reservations []*booking.Reservation
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", booking.ReservationStatusPendingPayment, before).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByResource returns reservations for a resource matching the filter
func (r *GormReservationRepository) FindByResource(ctx context.Context, orgID, resourceID uuid.UUID, filter shared.Filter) (*shared.Paginated[*booking.Reservation], error) {
	normalizePagination(&filter)
	query := r.db.WithContext(ctx).
		Model(&booking.Reservation{}).
		Where("org_id = ? AND resource_id = ?", orgID, resourceID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ReservationSortFields, "slot_start")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	var reservations []*booking.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(reservations, total, filter.Page, filter.PageSize)
	return &page, nil
}

var _ booking.ReservationRepository = (*GormReservationRepository)(nil)
