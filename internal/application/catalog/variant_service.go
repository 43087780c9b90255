package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/catalog"
	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/infrastructure/telemetry"
)

// VariantService generates, previews, and applies variant matrices.
type VariantService struct {
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
	txScope     TransactionScope
}

// NewVariantService creates a new VariantService. Reads go through the plain
// repositories; Apply runs inside txScope.
func NewVariantService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	txScope TransactionScope,
) *VariantService {
	return &VariantService{
		productRepo: productRepo,
		variantRepo: variantRepo,
		txScope:     txScope,
	}
}

// existingCombinations projects live variants into the reconciler's working form.
func existingCombinations(variants []*catalog.Variant) []catalog.Combination {
	combos := make([]catalog.Combination, len(variants))
	for i, v := range variants {
		id := v.ID
		combos[i] = catalog.Combination{
			ID:        &id,
			Name:      v.Name,
			Signature: v.Signature,
			SKU:       v.SKU,
			Price:     v.Price,
			Active:    v.Active,
		}
	}
	return combos
}

// Preview computes what applying the given option matrix would do. It writes
// nothing; the client renders the result for confirmation.
func (s *VariantService) Preview(ctx context.Context, orgID, productID uuid.UUID, req MatrixRequest) (*MatrixPreviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, orgID, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_ARCHIVED", "an archived product cannot be edited")
	}

	groups := toOptionGroups(req.OptionGroups)
	if err := catalog.ValidateOptionGroups(groups); err != nil {
		return nil, err
	}

	existing, err := s.variantRepo.FindByProduct(ctx, orgID, productID, false)
	if err != nil {
		return nil, err
	}

	generated := catalog.GenerateVariants(groups, product.DefaultPrice)
	result := catalog.Reconcile(generated, existingCombinations(existing))

	previews := make([]VariantPreview, len(result.Merged))
	for i, c := range result.Merged {
		previews[i] = VariantPreview{
			ID:        c.ID,
			Name:      c.Name,
			Signature: c.Signature,
			SKU:       c.SKU,
			Price:     c.Price,
			Active:    c.Active,
			IsNew:     c.IsNew,
		}
	}

	return &MatrixPreviewResponse{
		Variants:      previews,
		AddedCount:    result.AddedCount,
		KeptCount:     result.KeptCount,
		ArchivedCount: len(result.ArchivedIDs),
	}, nil
}

// Apply persists the given option matrix atomically. New combinations get an
// auto-generated SKU and a zero stock row at the default warehouse, surviving
// combinations keep their identity and overrides, and combinations that
// dropped out of the matrix are archived.
func (s *VariantService) Apply(ctx context.Context, orgID, productID uuid.UUID, req MatrixRequest) (*MatrixApplyResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "variant", "apply_matrix")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrProductID, productID.String(),
	)

	groups := toOptionGroups(req.OptionGroups)
	if err := catalog.ValidateOptionGroups(groups); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var response *MatrixApplyResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, orgID, productID)
		if err != nil {
			return err
		}
		if !product.IsActive() {
			return shared.NewDomainError("PRODUCT_ARCHIVED", "an archived product cannot be edited")
		}

		existing, err := repos.VariantRepo().FindByProduct(ctx, orgID, productID, false)
		if err != nil {
			return err
		}
		existingByID := make(map[uuid.UUID]*catalog.Variant, len(existing))
		for _, v := range existing {
			existingByID[v.ID] = v
		}

		generated := catalog.GenerateVariants(groups, product.DefaultPrice)
		result := catalog.Reconcile(generated, existingCombinations(existing))

		taken, err := repos.VariantRepo().TakenSKUs(ctx, orgID)
		if err != nil {
			return err
		}

		created := make([]*catalog.Variant, 0, result.AddedCount)
		updated := make([]*catalog.Variant, 0, result.KeptCount)
		ordered := make([]*catalog.Variant, 0, len(result.Merged))

		for _, c := range result.Merged {
			if c.IsNew {
				sku, err := catalog.AutoSKU(product.Title, c.Signature, taken)
				if err != nil {
					return err
				}
				taken[sku] = struct{}{}

				variant, err := catalog.NewVariant(orgID, product.ID, c.Name, c.Signature, sku, c.Price)
				if err != nil {
					return err
				}
				created = append(created, variant)
				ordered = append(ordered, variant)
				continue
			}

			variant, ok := existingByID[*c.ID]
			if !ok {
				return shared.ErrNotFound
			}
			variant.Refresh(c.Name, c.Signature)
			updated = append(updated, variant)
			ordered = append(ordered, variant)
		}

		if len(created) > 0 {
			if err := repos.VariantRepo().SaveBatch(ctx, created); err != nil {
				return err
			}
		}
		if len(updated) > 0 {
			if err := repos.VariantRepo().UpdateBatch(ctx, updated); err != nil {
				return err
			}
		}
		if len(result.ArchivedIDs) > 0 {
			if err := repos.VariantRepo().ArchiveByIDs(ctx, orgID, result.ArchivedIDs); err != nil {
				return err
			}
		}

		if err := s.seedStock(ctx, repos, orgID, created); err != nil {
			return err
		}

		if err := product.SetOptionGroups(groups); err != nil {
			return err
		}
		if err := repos.ProductRepo().Update(ctx, product); err != nil {
			return err
		}

		response = &MatrixApplyResponse{
			Variants:      ToVariantResponses(ordered),
			AddedCount:    result.AddedCount,
			KeptCount:     result.KeptCount,
			ArchivedCount: len(result.ArchivedIDs),
			ArchivedIDs:   result.ArchivedIDs,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrVariantCount, len(response.Variants),
		"added_count", response.AddedCount,
		"archived_count", response.ArchivedCount,
	)
	return response, nil
}

// seedStock creates zero-quantity stock rows at the default warehouse for
// newly created variants. Orgs that have not set up a warehouse skip seeding.
func (s *VariantService) seedStock(ctx context.Context, repos TransactionalRepositories, orgID uuid.UUID, created []*catalog.Variant) error {
	if len(created) == 0 {
		return nil
	}
	warehouse, err := repos.WarehouseRepo().FindDefault(ctx, orgID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	items := make([]*inventory.StockItem, 0, len(created))
	for _, v := range created {
		item, err := inventory.NewStockItem(orgID, warehouse.ID, v.ID)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	return repos.StockItemRepo().SaveBatch(ctx, items)
}

// ListByProduct returns a product's variants, optionally including archived ones.
func (s *VariantService) ListByProduct(ctx context.Context, orgID, productID uuid.UUID, includeArchived bool) ([]VariantResponse, error) {
	variants, err := s.variantRepo.FindByProduct(ctx, orgID, productID, includeArchived)
	if err != nil {
		return nil, err
	}
	return ToVariantResponses(variants), nil
}

// Update edits one variant's SKU, price, or active flag.
func (s *VariantService) Update(ctx context.Context, orgID, variantID uuid.UUID, req UpdateVariantRequest) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, orgID, variantID)
	if err != nil {
		return nil, err
	}
	if variant.IsArchived() {
		return nil, shared.NewDomainError("VARIANT_ARCHIVED", "an archived variant cannot be edited")
	}

	if req.SKU != nil && *req.SKU != variant.SKU {
		other, err := s.variantRepo.FindBySKU(ctx, orgID, *req.SKU)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if other != nil && other.ID != variant.ID {
			return nil, shared.NewDomainError("SKU_TAKEN", "another variant already uses this SKU")
		}
		if err := variant.UpdateSKU(*req.SKU); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		if err := variant.UpdatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		variant.SetActive(*req.Active)
	}

	if err := s.variantRepo.Update(ctx, variant); err != nil {
		return nil, err
	}
	resp := ToVariantResponse(variant)
	return &resp, nil
}
