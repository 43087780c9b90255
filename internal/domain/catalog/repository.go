package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/shared"
)

// ProductRepository persists product aggregates.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[*Product], error)
}

// VariantRepository persists variant aggregates. SaveBatch and UpdateBatch run
// inside whatever transaction the caller has bound to ctx.
type VariantRepository interface {
	Save(ctx context.Context, variant *Variant) error
	SaveBatch(ctx context.Context, variants []*Variant) error
	Update(ctx context.Context, variant *Variant) error
	UpdateBatch(ctx context.Context, variants []*Variant) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*Variant, error)
	FindByProduct(ctx context.Context, orgID, productID uuid.UUID, includeArchived bool) ([]*Variant, error)
	FindBySKU(ctx context.Context, orgID uuid.UUID, sku string) (*Variant, error)
	TakenSKUs(ctx context.Context, orgID uuid.UUID) (map[string]struct{}, error)
	ArchiveByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error
}
