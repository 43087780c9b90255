package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// Save creates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Create(warehouse).Error
}

// Update persists changes to a warehouse
func (r *GormWarehouseRepository) Update(ctx context.Context, warehouse *inventory.Warehouse) error {
	result := r.db.WithContext(ctx).
		Model(warehouse).
		Where("org_id = ? AND version = ?", warehouse.OrgID, warehouse.Version-1).
		Select("name", "code", "is_default", "active", "version", "updated_at").
		Updates(*warehouse)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a warehouse by ID within an org
func (r *GormWarehouseRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Warehouse, error) {
	var warehouse inventory.Warehouse
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindDefault finds the default warehouse for an org
func (r *GormWarehouseRepository) FindDefault(ctx context.Context, orgID uuid.UUID) (*inventory.Warehouse, error) {
	var warehouse inventory.Warehouse
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND is_default = ?", orgID, true).
		First(&warehouse).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll finds all warehouses for an org, default first
func (r *GormWarehouseRepository) FindAll(ctx context.Context, orgID uuid.UUID) ([]*inventory.Warehouse, error) {
	var warehouses []*inventory.Warehouse
	if err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("is_default DESC, name ASC").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)
