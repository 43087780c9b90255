package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*catalog.Product]), args.Error(1)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *MockVariantRepository) SaveBatch(ctx context.Context, variants []*catalog.Variant) error {
	return m.Called(ctx, variants).Error(0)
}

func (m *MockVariantRepository) Update(ctx context.Context, variant *catalog.Variant) error {
	return m.Called(ctx, variant).Error(0)
}

func (m *MockVariantRepository) UpdateBatch(ctx context.Context, variants []*catalog.Variant) error {
	return m.Called(ctx, variants).Error(0)
}

func (m *MockVariantRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByProduct(ctx context.Context, orgID, productID uuid.UUID, includeArchived bool) ([]*catalog.Variant, error) {
	args := m.Called(ctx, orgID, productID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*catalog.Variant, error) {
	args := m.Called(ctx, orgID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) TakenSKUs(ctx context.Context, orgID uuid.UUID) (map[string]struct{}, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockVariantRepository) ArchiveByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	return m.Called(ctx, orgID, ids).Error(0)
}

type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockStockItemRepository) SaveBatch(ctx context.Context, items []*inventory.StockItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockStockItemRepository) Update(ctx context.Context, item *inventory.StockItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByWarehouseAndVariant(ctx context.Context, orgID, warehouseID, variantID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, orgID, warehouseID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByVariant(ctx context.Context, orgID, variantID uuid.UUID) ([]*inventory.StockItem, error) {
	args := m.Called(ctx, orgID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return m.Called(ctx, warehouse).Error(0)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *inventory.Warehouse) error {
	return m.Called(ctx, warehouse).Error(0)
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindDefault(ctx context.Context, orgID uuid.UUID) (*inventory.Warehouse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, orgID uuid.UUID) ([]*inventory.Warehouse, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Warehouse), args.Error(1)
}
