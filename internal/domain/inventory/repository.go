package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// WarehouseRepository persists warehouses.
type WarehouseRepository interface {
	Save(ctx context.Context, warehouse *Warehouse) error
	Update(ctx context.Context, warehouse *Warehouse) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Warehouse, error)
	FindDefault(ctx context.Context, orgID uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, orgID uuid.UUID) ([]*Warehouse, error)
}

// StockItemRepository persists stock rows. SaveBatch participates in the
// caller's transaction when one is bound to ctx.
type StockItemRepository interface {
	Save(ctx context.Context, item *StockItem) error
	SaveBatch(ctx context.Context, items []*StockItem) error
	Update(ctx context.Context, item *StockItem) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*StockItem, error)
	FindByWarehouseAndVariant(ctx context.Context, orgID, warehouseID, variantID uuid.UUID) (*StockItem, error)
	FindByVariant(ctx context.Context, orgID, variantID uuid.UUID) ([]*StockItem, error)
}

// StockMovementRepository appends to and reads the stock ledger. Movements
// are never updated or deleted.
type StockMovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	FindByStockItem(ctx context.Context, orgID, stockItemID uuid.UUID, filter shared.Filter) (*shared.Paginated[*StockMovement], error)
}
