package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/shared"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// Save creates a variant
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

// SaveBatch creates multiple variants in one insert
func (r *GormVariantRepository) SaveBatch(ctx context.Context, variants []*catalog.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(variants).Error
}

// Update persists changes to a variant
func (r *GormVariantRepository) Update(ctx context.Context, variant *catalog.Variant) error {
	result := r.db.WithContext(ctx).
		Model(variant).
		Where("org_id = ? AND version = ?", variant.OrgID, variant.Version-1).
		Select("name", "signature", "sku", "price", "active", "status", "version", "updated_at").
		Updates(*variant)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// UpdateBatch persists changes to multiple variants
func (r *GormVariantRepository) UpdateBatch(ctx context.Context, variants []*catalog.Variant) error {
	for _, variant := range variants {
		if err := r.Update(ctx, variant); err != nil {
			return err
		}
	}
	return nil
}

// FindByID finds a variant by ID within an org
func (r *GormVariantRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByProduct finds all variants for a product, newest combination order
// preserved through signature ordering upstream.
func (r *GormVariantRepository) FindByProduct(ctx context.Context, orgID, productID uuid.UUID, includeArchived bool) ([]*catalog.Variant, error) {
	query := r.db.WithContext(ctx).
		Where("org_id = ? AND product_id = ?", orgID, productID)
	if !includeArchived {
		query = query.Where("status <> ?", catalog.VariantStatusArchived)
	}

	var variants []*catalog.Variant
	if err := query.Order("created_at ASC, id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindBySKU finds a variant by SKU within an org
func (r *GormVariantRepository) FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND sku = ?", orgID, sku).
		First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// TakenSKUs returns every SKU in use within an org, archived variants
// included so their SKUs are never reissued.
func (r *GormVariantRepository) TakenSKUs(ctx context.Context, orgID uuid.UUID) (map[string]struct{}, error) {
	var skus []string
	if err := r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Where("org_id = ?", orgID).
		Pluck("sku", &skus).Error; err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(skus))
	for _, sku := range skus {
		taken[sku] = struct{}{}
	}
	return taken, nil
}

// ArchiveByIDs marks the given variants archived and inactive
func (r *GormVariantRepository) ArchiveByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Where("org_id = ? AND id IN ?", orgID, ids).
		Updates(map[string]interface{}{
			"status":     catalog.VariantStatusArchived,
			"active":     false,
			"updated_at": time.Now(),
		}).Error
}

var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
