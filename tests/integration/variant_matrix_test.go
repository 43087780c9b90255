package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/growbro/backend/internal/application/catalog"
	inventoryapp "github.com/growbro/backend/internal/application/inventory"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/infrastructure/persistence"
)

// TestMain tears down the shared container after all tests in the package.
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

type catalogFixture struct {
	products  *catalogapp.ProductService
	variants  *catalogapp.VariantService
	inventory *inventoryapp.InventoryService
}

func newCatalogFixture(testDB *TestDB) *catalogFixture {
	productRepo := persistence.NewGormProductRepository(testDB.DB)
	variantRepo := persistence.NewGormVariantRepository(testDB.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(testDB.DB)
	stockItemRepo := persistence.NewGormStockItemRepository(testDB.DB)
	movementRepo := persistence.NewGormStockMovementRepository(testDB.DB)
	txScope := persistence.NewGormTransactionScope(testDB.DB)

	return &catalogFixture{
		products:  catalogapp.NewProductService(productRepo, variantRepo),
		variants:  catalogapp.NewVariantService(productRepo, variantRepo, txScope),
		inventory: inventoryapp.NewInventoryService(warehouseRepo, stockItemRepo, movementRepo),
	}
}

func tshirtMatrix() catalogapp.MatrixRequest {
	return catalogapp.MatrixRequest{
		OptionGroups: []catalogapp.OptionGroupInput{
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Color", Values: []string{"Black", "White"}},
		},
	}
}

// TestVariantMatrixLifecycle drives the full preview, apply, re-apply flow
// against a real database: generation, SKU assignment, stock seeding,
// reconciliation on shrink, and signature stability across re-applies.
func TestVariantMatrixLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	fix := newCatalogFixture(testDB)
	ctx := context.Background()
	orgID := uuid.New()

	// Default warehouse so Apply seeds stock rows.
	_, err := fix.inventory.CreateWarehouse(ctx, orgID, inventoryapp.CreateWarehouseRequest{
		Name:      "Main",
		Code:      "MAIN",
		IsDefault: true,
	})
	require.NoError(t, err)

	product, err := fix.products.Create(ctx, orgID, catalogapp.CreateProductRequest{
		Title:        "Classic Tee",
		Description:  "Heavyweight cotton tee",
		DefaultPrice: decimal.NewFromFloat(19.90),
		Currency:     "USD",
	})
	require.NoError(t, err)

	t.Run("preview generates full cartesian product", func(t *testing.T) {
		preview, err := fix.variants.Preview(ctx, orgID, product.ID, tshirtMatrix())
		require.NoError(t, err)

		assert.Len(t, preview.Variants, 6)
		assert.Equal(t, 6, preview.AddedCount)
		assert.Equal(t, 0, preview.KeptCount)
		for _, v := range preview.Variants {
			assert.True(t, v.IsNew)
			assert.Nil(t, v.ID)
			assert.True(t, decimal.NewFromFloat(19.90).Equal(v.Price))
		}

		// Preview writes nothing.
		persisted, err := fix.variants.ListByProduct(ctx, orgID, product.ID, true)
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	var firstSignatures map[string]uuid.UUID

	t.Run("apply persists variants with unique skus", func(t *testing.T) {
		applied, err := fix.variants.Apply(ctx, orgID, product.ID, tshirtMatrix())
		require.NoError(t, err)

		require.Len(t, applied.Variants, 6)
		assert.Equal(t, 6, applied.AddedCount)
		assert.Equal(t, 0, applied.ArchivedCount)

		skus := make(map[string]struct{}, len(applied.Variants))
		firstSignatures = make(map[string]uuid.UUID, len(applied.Variants))
		for _, v := range applied.Variants {
			assert.NotEmpty(t, v.SKU)
			_, dup := skus[v.SKU]
			assert.False(t, dup, "duplicate SKU %s", v.SKU)
			skus[v.SKU] = struct{}{}
			firstSignatures[v.Signature] = v.ID
		}
		assert.Len(t, firstSignatures, 6, "signatures must be unique per combination")
	})

	t.Run("apply seeds zero stock at default warehouse", func(t *testing.T) {
		variants, err := fix.variants.ListByProduct(ctx, orgID, product.ID, false)
		require.NoError(t, err)
		require.NotEmpty(t, variants)

		stock, err := fix.inventory.StockByVariant(ctx, orgID, variants[0].ID)
		require.NoError(t, err)
		require.Len(t, stock, 1)
		assert.True(t, stock[0].Quantity.IsZero())
	})

	t.Run("re-applying the same matrix changes nothing", func(t *testing.T) {
		applied, err := fix.variants.Apply(ctx, orgID, product.ID, tshirtMatrix())
		require.NoError(t, err)

		assert.Equal(t, 0, applied.AddedCount)
		assert.Equal(t, 6, applied.KeptCount)
		assert.Equal(t, 0, applied.ArchivedCount)

		// Kept variants retain their identity and signature.
		for _, v := range applied.Variants {
			id, ok := firstSignatures[v.Signature]
			assert.True(t, ok, "signature %s appeared out of nowhere", v.Signature)
			assert.Equal(t, id, v.ID)
		}
	})

	t.Run("shrinking the matrix archives dropped combinations", func(t *testing.T) {
		smaller := catalogapp.MatrixRequest{
			OptionGroups: []catalogapp.OptionGroupInput{
				{Name: "Size", Values: []string{"S", "M", "L"}},
				{Name: "Color", Values: []string{"Black"}},
			},
		}

		applied, err := fix.variants.Apply(ctx, orgID, product.ID, smaller)
		require.NoError(t, err)

		assert.Equal(t, 0, applied.AddedCount)
		assert.Equal(t, 3, applied.KeptCount)
		assert.Equal(t, 3, applied.ArchivedCount)
		assert.Len(t, applied.ArchivedIDs, 3)

		live, err := fix.variants.ListByProduct(ctx, orgID, product.ID, false)
		require.NoError(t, err)
		assert.Len(t, live, 3)

		all, err := fix.variants.ListByProduct(ctx, orgID, product.ID, true)
		require.NoError(t, err)
		assert.Len(t, all, 6)
	})

	t.Run("growing the matrix back revives dropped combinations as new rows", func(t *testing.T) {
		applied, err := fix.variants.Apply(ctx, orgID, product.ID, tshirtMatrix())
		require.NoError(t, err)

		assert.Equal(t, 3, applied.AddedCount)
		assert.Equal(t, 3, applied.KeptCount)

		// Archived rows keep their SKUs, so revived combinations get fresh ones.
		live, err := fix.variants.ListByProduct(ctx, orgID, product.ID, false)
		require.NoError(t, err)
		assert.Len(t, live, 6)
	})
}

// TestVariantMatrixOrgIsolation verifies one org can never preview, apply, or
// list against another org's product.
func TestVariantMatrixOrgIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	fix := newCatalogFixture(testDB)
	ctx := context.Background()

	ownerOrg := uuid.New()
	otherOrg := uuid.New()

	product, err := fix.products.Create(ctx, ownerOrg, catalogapp.CreateProductRequest{
		Title:        "House Blend Beans",
		DefaultPrice: decimal.NewFromInt(14),
		Currency:     "USD",
	})
	require.NoError(t, err)

	_, err = fix.variants.Apply(ctx, ownerOrg, product.ID, catalogapp.MatrixRequest{
		OptionGroups: []catalogapp.OptionGroupInput{
			{Name: "Grind", Values: []string{"Whole", "Espresso"}},
		},
	})
	require.NoError(t, err)

	t.Run("foreign org cannot preview", func(t *testing.T) {
		_, err := fix.variants.Preview(ctx, otherOrg, product.ID, tshirtMatrix())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("foreign org cannot apply", func(t *testing.T) {
		_, err := fix.variants.Apply(ctx, otherOrg, product.ID, tshirtMatrix())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("foreign org sees no variants", func(t *testing.T) {
		variants, err := fix.variants.ListByProduct(ctx, otherOrg, product.ID, true)
		require.NoError(t, err)
		assert.Empty(t, variants)
	})

	t.Run("owner still sees its variants", func(t *testing.T) {
		variants, err := fix.variants.ListByProduct(ctx, ownerOrg, product.ID, false)
		require.NoError(t, err)
		assert.Len(t, variants, 2)
	})
}
