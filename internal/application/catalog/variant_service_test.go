package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/domain/shared/valueobject"
)

type variantServiceFixture struct {
	productRepo   *MockProductRepository
	variantRepo   *MockVariantRepository
	stockItemRepo *MockStockItemRepository
	warehouseRepo *MockWarehouseRepository
	service       *VariantService
	orgID         uuid.UUID
	product       *catalog.Product
}

func newVariantServiceFixture(t *testing.T) *variantServiceFixture {
	t.Helper()
	orgID := uuid.New()

	product, err := catalog.NewProduct(orgID, "Classic Tee", "",
		valueobject.NewMoneyUSD(decimal.NewFromFloat(19.90)))
	require.NoError(t, err)

	f := &variantServiceFixture{
		productRepo:   new(MockProductRepository),
		variantRepo:   new(MockVariantRepository),
		stockItemRepo: new(MockStockItemRepository),
		warehouseRepo: new(MockWarehouseRepository),
		orgID:         orgID,
		product:       product,
	}
	scope := NewNoOpTransactionScope(f.productRepo, f.variantRepo, f.stockItemRepo, f.warehouseRepo)
	f.service = NewVariantService(f.productRepo, f.variantRepo, scope)
	return f
}

func matrixRequest(groups ...OptionGroupInput) MatrixRequest {
	return MatrixRequest{OptionGroups: groups}
}

func TestVariantServicePreview(t *testing.T) {
	ctx := context.Background()

	t.Run("previews additions without writing", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		f.productRepo.On("FindByID", ctx, f.orgID, f.product.ID).Return(f.product, nil)
		f.variantRepo.On("FindByProduct", ctx, f.orgID, f.product.ID, false).
			Return([]*catalog.Variant{}, nil)

		resp, err := f.service.Preview(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S", "M"}},
			OptionGroupInput{Name: "Color", Values: []string{"Red"}},
		))
		require.NoError(t, err)
		assert.Equal(t, 2, resp.AddedCount)
		assert.Equal(t, 0, resp.KeptCount)
		assert.Len(t, resp.Variants, 2)
		f.variantRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("previews kept and archived", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		kept, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: S", "s", "TEE-S", decimal.NewFromInt(10))
		require.NoError(t, err)
		dropped, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: L", "l", "TEE-L", decimal.NewFromInt(10))
		require.NoError(t, err)

		f.productRepo.On("FindByID", ctx, f.orgID, f.product.ID).Return(f.product, nil)
		f.variantRepo.On("FindByProduct", ctx, f.orgID, f.product.ID, false).
			Return([]*catalog.Variant{kept, dropped}, nil)

		resp, err := f.service.Preview(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S", "M"}},
		))
		require.NoError(t, err)
		assert.Equal(t, 1, resp.KeptCount)
		assert.Equal(t, 1, resp.AddedCount)
		assert.Equal(t, 1, resp.ArchivedCount)
	})

	t.Run("rejects invalid option groups", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		f.productRepo.On("FindByID", ctx, f.orgID, f.product.ID).Return(f.product, nil)

		_, err := f.service.Preview(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S", "s"}},
		))
		assert.Error(t, err)
	})

	t.Run("rejects archived product", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		f.product.Archive()
		f.productRepo.On("FindByID", ctx, f.orgID, f.product.ID).Return(f.product, nil)

		_, err := f.service.Preview(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S"}},
		))
		assert.Error(t, err)
	})
}

func TestVariantServiceApply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates variants with unique SKUs and seeds stock", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		warehouse, err := inventory.NewWarehouse(f.orgID, "Main", "MAIN", true)
		require.NoError(t, err)

		f.productRepo.On("FindByID", mock.Anything, f.orgID, f.product.ID).Return(f.product, nil)
		f.productRepo.On("Update", mock.Anything, f.product).Return(nil)
		f.variantRepo.On("FindByProduct", mock.Anything, f.orgID, f.product.ID, false).
			Return([]*catalog.Variant{}, nil)
		f.variantRepo.On("TakenSKUs", mock.Anything, f.orgID).Return(map[string]struct{}{}, nil)
		f.warehouseRepo.On("FindDefault", mock.Anything, f.orgID).Return(warehouse, nil)

		var savedVariants []*catalog.Variant
		f.variantRepo.On("SaveBatch", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				savedVariants = args.Get(1).([]*catalog.Variant)
			}).Return(nil)

		var seeded []*inventory.StockItem
		f.stockItemRepo.On("SaveBatch", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				seeded = args.Get(1).([]*inventory.StockItem)
			}).Return(nil)

		resp, err := f.service.Apply(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S", "M"}},
		))
		require.NoError(t, err)
		assert.Equal(t, 2, resp.AddedCount)

		require.Len(t, savedVariants, 2)
		skus := map[string]struct{}{}
		for _, v := range savedVariants {
			assert.NotEmpty(t, v.SKU)
			skus[v.SKU] = struct{}{}
		}
		assert.Len(t, skus, 2, "generated SKUs must be unique")

		require.Len(t, seeded, 2)
		for _, item := range seeded {
			assert.True(t, item.Quantity.IsZero())
			assert.Equal(t, warehouse.ID, item.WarehouseID)
		}
		assert.Len(t, f.product.OptionGroups, 1)
	})

	t.Run("keeps surviving variants and archives dropped ones", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		kept, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: S", "s", "CUSTOM-S", decimal.NewFromFloat(12.50))
		require.NoError(t, err)
		dropped, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: L", "l", "TEE-L", decimal.NewFromInt(10))
		require.NoError(t, err)

		f.productRepo.On("FindByID", mock.Anything, f.orgID, f.product.ID).Return(f.product, nil)
		f.productRepo.On("Update", mock.Anything, f.product).Return(nil)
		f.variantRepo.On("FindByProduct", mock.Anything, f.orgID, f.product.ID, false).
			Return([]*catalog.Variant{kept, dropped}, nil)
		f.variantRepo.On("TakenSKUs", mock.Anything, f.orgID).
			Return(map[string]struct{}{"CUSTOM-S": {}, "TEE-L": {}}, nil)
		f.variantRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)
		f.variantRepo.On("UpdateBatch", mock.Anything, mock.Anything).Return(nil)
		f.variantRepo.On("ArchiveByIDs", mock.Anything, f.orgID, []uuid.UUID{dropped.ID}).Return(nil)
		f.warehouseRepo.On("FindDefault", mock.Anything, f.orgID).Return(nil, shared.ErrNotFound)

		resp, err := f.service.Apply(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Shirt Size", Values: []string{"S", "M"}},
		))
		require.NoError(t, err)
		assert.Equal(t, 1, resp.KeptCount)
		assert.Equal(t, 1, resp.AddedCount)
		assert.Equal(t, []uuid.UUID{dropped.ID}, resp.ArchivedIDs)

		// Kept variant follows the new group name but keeps its SKU.
		assert.Equal(t, "Shirt Size: S", kept.Name)
		assert.Equal(t, "CUSTOM-S", kept.SKU)
		f.variantRepo.AssertCalled(t, "ArchiveByIDs", mock.Anything, f.orgID, []uuid.UUID{dropped.ID})
	})

	t.Run("missing default warehouse skips stock seeding", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		f.productRepo.On("FindByID", mock.Anything, f.orgID, f.product.ID).Return(f.product, nil)
		f.productRepo.On("Update", mock.Anything, f.product).Return(nil)
		f.variantRepo.On("FindByProduct", mock.Anything, f.orgID, f.product.ID, false).
			Return([]*catalog.Variant{}, nil)
		f.variantRepo.On("TakenSKUs", mock.Anything, f.orgID).Return(map[string]struct{}{}, nil)
		f.variantRepo.On("SaveBatch", mock.Anything, mock.Anything).Return(nil)
		f.warehouseRepo.On("FindDefault", mock.Anything, f.orgID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Apply(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "Size", Values: []string{"S"}},
		))
		require.NoError(t, err)
		f.stockItemRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("invalid groups fail before any repository call", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		_, err := f.service.Apply(ctx, f.orgID, f.product.ID, matrixRequest(
			OptionGroupInput{Name: "", Values: []string{"S"}},
		))
		assert.Error(t, err)
		f.productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVariantServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("sku change checks uniqueness", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		variant, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: S", "s", "TEE-S", decimal.NewFromInt(10))
		require.NoError(t, err)
		other, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: M", "m", "TEE-M", decimal.NewFromInt(10))
		require.NoError(t, err)

		f.variantRepo.On("FindByID", ctx, f.orgID, variant.ID).Return(variant, nil)
		f.variantRepo.On("FindBySKU", ctx, f.orgID, "TEE-M").Return(other, nil)

		taken := "TEE-M"
		_, err = f.service.Update(ctx, f.orgID, variant.ID, UpdateVariantRequest{SKU: &taken})
		assert.Error(t, err)
	})

	t.Run("updates price and active flag", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		variant, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: S", "s", "TEE-S", decimal.NewFromInt(10))
		require.NoError(t, err)

		f.variantRepo.On("FindByID", ctx, f.orgID, variant.ID).Return(variant, nil)
		f.variantRepo.On("Update", ctx, variant).Return(nil)

		price := decimal.NewFromFloat(14.90)
		active := false
		resp, err := f.service.Update(ctx, f.orgID, variant.ID, UpdateVariantRequest{Price: &price, Active: &active})
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(price))
		assert.False(t, resp.Active)
	})

	t.Run("archived variant is read only", func(t *testing.T) {
		f := newVariantServiceFixture(t)
		variant, err := catalog.NewVariant(f.orgID, f.product.ID, "Size: S", "s", "TEE-S", decimal.NewFromInt(10))
		require.NoError(t, err)
		variant.Archive()

		f.variantRepo.On("FindByID", ctx, f.orgID, variant.ID).Return(variant, nil)

		active := true
		_, err = f.service.Update(ctx, f.orgID, variant.ID, UpdateVariantRequest{Active: &active})
		assert.Error(t, err)
	})
}
