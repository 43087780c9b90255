package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/booking"
	"github.com/growbro/backend/internal/domain/shared"
)

// GormResourceRepository implements ResourceRepository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GormResourceRepository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// Save creates a bookable resource
func (r *GormResourceRepository) Save(ctx context.Context, resource *booking.BookableResource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

// Update persists changes to a resource
func (r *GormResourceRepository) Update(ctx context.Context, resource *booking.BookableResource) error {
	result := r.db.WithContext(ctx).
		Model(resource).
		Where("org_id = ? AND version = ?", resource.OrgID, resource.Version-1).
		Select("name", "description", "capacity", "slot_minutes", "active", "version", "updated_at").
		Updates(*resource)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a resource by ID within an org
func (r *GormResourceRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*booking.BookableResource, error) {
	var resource booking.BookableResource
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

// FindAll finds resources for an org matching the filter
func (r *GormResourceRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[*booking.BookableResource], error) {
	normalizePagination(&filter)
	query := r.db.WithContext(ctx).
		Model(&booking.BookableResource{}).
		Where("org_id = ?", orgID)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ResourceSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	var resources []*booking.BookableResource
	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(resources, total, filter.Page, filter.PageSize)
	return &page, nil
}

var _ booking.ResourceRepository = (*GormResourceRepository)(nil)
