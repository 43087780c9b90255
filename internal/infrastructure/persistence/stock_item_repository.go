package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// Save creates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveBatch creates multiple stock items in one insert
func (r *GormStockItemRepository) SaveBatch(ctx context.Context, items []*inventory.StockItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

// Update persists a quantity change. The version check turns lost updates
// into ErrConcurrencyConflict instead of silent overwrites.
func (r *GormStockItemRepository) Update(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("org_id = ? AND version = ?", item.OrgID, item.Version-1).
		Select("quantity", "version", "updated_at").
		Updates(*item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a stock item by ID within an org
func (r *GormStockItemRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByWarehouseAndVariant finds the stock row for a variant in a warehouse
func (r *GormStockItemRepository) FindByWarehouseAndVariant(ctx context.Context, orgID, warehouseID, variantID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND warehouse_id = ? AND variant_id = ?", orgID, warehouseID, variantID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByVariant finds all stock rows for a variant across warehouses
func (r *GormStockItemRepository) FindByVariant(ctx context.Context, orgID, variantID uuid.UUID) ([]*inventory.StockItem, error) {
	var items []*inventory.StockItem
	if err := r.db.WithContext(ctx).
		Where("org_id = ? AND variant_id = ?", orgID, variantID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// Movements are append-only.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement to the ledger
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByStockItem returns the movement ledger for a stock item, newest first
func (r *GormStockMovementRepository) FindByStockItem(ctx context.Context, orgID, stockItemID uuid.UUID, filter shared.Filter) (*shared.Paginated[*inventory.StockMovement], error) {
	normalizePagination(&filter)
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("org_id = ? AND stock_item_id = ?", orgID, stockItemID)

	if movementType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", movementType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, MovementSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	var movements []*inventory.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(movements, total, filter.Page, filter.PageSize)
	return &page, nil
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
