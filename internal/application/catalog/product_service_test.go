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
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/domain/shared/valueobject"
)

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("creates and saves product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		variantRepo := new(MockVariantRepository)
		service := NewProductService(productRepo, variantRepo)

		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(ctx, orgID, CreateProductRequest{
			Title:        "Classic Tee",
			Description:  "Plain cotton tee",
			DefaultPrice: decimal.NewFromFloat(19.90),
			Currency:     "USD",
		})
		require.NoError(t, err)
		assert.Equal(t, "Classic Tee", resp.Title)
		assert.Equal(t, "active", resp.Status)
		productRepo.AssertExpectations(t)
	})

	t.Run("defaults currency when omitted", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockVariantRepository))
		productRepo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, orgID, CreateProductRequest{
			Title:        "Classic Tee",
			DefaultPrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.Equal(t, string(valueobject.DefaultCurrency), resp.Currency)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		service := NewProductService(new(MockProductRepository), new(MockVariantRepository))
		_, err := service.Create(ctx, orgID, CreateProductRequest{Title: "  "})
		assert.Error(t, err)
	})
}

func TestProductServiceArchive(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("archives product and its variants", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		variantRepo := new(MockVariantRepository)
		service := NewProductService(productRepo, variantRepo)

		product, err := catalog.NewProduct(orgID, "Classic Tee", "",
			valueobject.NewMoneyUSD(decimal.NewFromInt(10)))
		require.NoError(t, err)
		variant, err := catalog.NewVariant(orgID, product.ID, "Size: S", "s", "TEE-S", decimal.NewFromInt(10))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, orgID, product.ID).Return(product, nil)
		productRepo.On("Update", ctx, product).Return(nil)
		variantRepo.On("FindByProduct", ctx, orgID, product.ID, false).
			Return([]*catalog.Variant{variant}, nil)
		variantRepo.On("ArchiveByIDs", ctx, orgID, []uuid.UUID{variant.ID}).Return(nil)

		require.NoError(t, service.Archive(ctx, orgID, product.ID))
		assert.False(t, product.IsActive())
		variantRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockVariantRepository))
		productRepo.On("FindByID", ctx, orgID, mock.Anything).Return(nil, shared.ErrNotFound)

		err := service.Archive(ctx, orgID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceRestore(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("reactivates archived product without touching variants", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		variantRepo := new(MockVariantRepository)
		service := NewProductService(productRepo, variantRepo)

		product, err := catalog.NewProduct(orgID, "Classic Tee", "",
			valueobject.NewMoneyUSD(decimal.NewFromInt(10)))
		require.NoError(t, err)
		product.Archive()

		productRepo.On("FindByID", ctx, orgID, product.ID).Return(product, nil)
		productRepo.On("Update", ctx, product).Return(nil)

		resp, err := service.Restore(ctx, orgID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, string(catalog.ProductStatusActive), resp.Status)
		variantRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockVariantRepository))
		productRepo.On("FindByID", ctx, orgID, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.Restore(ctx, orgID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()
	orgID := uuid.New()

	t.Run("archived product is read only", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockVariantRepository))

		product, err := catalog.NewProduct(orgID, "Classic Tee", "",
			valueobject.NewMoneyUSD(decimal.NewFromInt(10)))
		require.NoError(t, err)
		product.Archive()
		productRepo.On("FindByID", ctx, orgID, product.ID).Return(product, nil)

		_, err = service.Update(ctx, orgID, product.ID, UpdateProductRequest{
			Title:        "New Title",
			DefaultPrice: decimal.NewFromInt(10),
		})
		assert.Error(t, err)
	})
}
