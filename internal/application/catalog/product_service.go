package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/domain/shared/valueobject"
)

// ProductService handles product lifecycle operations.
type ProductService struct {
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo catalog.ProductRepository, variantRepo catalog.VariantRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

func requestMoney(amount decimal.Decimal, currency string) (valueobject.Money, error) {
	if currency == "" {
		currency = string(valueobject.DefaultCurrency)
	}
	return valueobject.NewMoney(amount, valueobject.Currency(currency))
}

// Create creates a new product without variants.
func (s *ProductService) Create(ctx context.Context, orgID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	price, err := requestMoney(req.DefaultPrice, req.Currency)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(orgID, req.Title, req.Description, price)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		product.CreatedBy = req.CreatedBy
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID fetches one product.
func (s *ProductService) GetByID(ctx context.Context, orgID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List returns a page of products.
func (s *ProductService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) ([]*ProductResponse, int64, error) {
	page, err := s.productRepo.FindAll(ctx, orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*ProductResponse, len(page.Items))
	for i, p := range page.Items {
		out[i] = ToProductResponse(p)
	}
	return out, page.Total, nil
}

// Update edits product details. Archived products are read only.
func (s *ProductService) Update(ctx context.Context, orgID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_ARCHIVED", "an archived product cannot be edited")
	}

	price, err := requestMoney(req.DefaultPrice, req.Currency)
	if err != nil {
		return nil, err
	}
	if err := product.UpdateDetails(req.Title, req.Description, price); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Archive retires a product and archives all of its live variants.
func (s *ProductService) Archive(ctx context.Context, orgID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, orgID, productID)
	if err != nil {
		return err
	}

	variants, err := s.variantRepo.FindByProduct(ctx, orgID, productID, false)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}
	if len(ids) > 0 {
		if err := s.variantRepo.ArchiveByIDs(ctx, orgID, ids); err != nil {
			return err
		}
	}

	product.Archive()
	return s.productRepo.Update(ctx, product)
}

// Restore reactivates an archived product. Its variants remain archived and
// come back through the next matrix apply.
func (s *ProductService) Restore(ctx context.Context, orgID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}

	product.Restore()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}
