package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/catalog"
)

// OptionGroupInput is one variant dimension as submitted by the client.
type OptionGroupInput struct {
	Name   string   `json:"name" binding:"required"`
	Values []string `json:"values" binding:"required"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Currency     string          `json:"currency"`
	CreatedBy    *uuid.UUID      `json:"-"`
}

// UpdateProductRequest is the payload for updating product details.
type UpdateProductRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Currency     string          `json:"currency"`
}

// MatrixRequest carries the full option matrix for preview or apply.
type MatrixRequest struct {
	OptionGroups []OptionGroupInput `json:"option_groups" binding:"required"`
}

// UpdateVariantRequest edits a single variant's overridable fields.
type UpdateVariantRequest struct {
	SKU    *string          `json:"sku"`
	Price  *decimal.Decimal `json:"price"`
	Active *bool            `json:"active"`
}

// ProductResponse is the outward view of a product.
type ProductResponse struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	DefaultPrice decimal.Decimal    `json:"default_price"`
	Currency     string             `json:"currency"`
	Status       string             `json:"status"`
	OptionGroups []OptionGroupInput `json:"option_groups"`
	Version      int                `json:"version"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// VariantResponse is the outward view of a persisted variant.
type VariantResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Signature string          `json:"signature"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	Status    string          `json:"status"`
	Version   int             `json:"version"`
}

// VariantPreview is one row of a matrix preview. IDs are present only for
// combinations that already exist.
type VariantPreview struct {
	ID        *uuid.UUID      `json:"id,omitempty"`
	Name      string          `json:"name"`
	Signature string          `json:"signature"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Active    bool            `json:"active"`
	IsNew     bool            `json:"is_new"`
}

// MatrixPreviewResponse shows what applying an option matrix would do,
// without writing anything.
type MatrixPreviewResponse struct {
	Variants      []VariantPreview `json:"variants"`
	AddedCount    int              `json:"added_count"`
	KeptCount     int              `json:"kept_count"`
	ArchivedCount int              `json:"archived_count"`
}

// MatrixApplyResponse reports the persisted outcome of applying a matrix.
type MatrixApplyResponse struct {
	Variants      []VariantResponse `json:"variants"`
	AddedCount    int               `json:"added_count"`
	KeptCount     int               `json:"kept_count"`
	ArchivedCount int               `json:"archived_count"`
	ArchivedIDs   []uuid.UUID       `json:"archived_ids"`
}

func toOptionGroups(inputs []OptionGroupInput) []catalog.OptionGroup {
	groups := make([]catalog.OptionGroup, len(inputs))
	for i, in := range inputs {
		groups[i] = catalog.OptionGroup{Name: in.Name, Values: in.Values}
	}
	return groups
}

func toOptionGroupInputs(groups []catalog.OptionGroup) []OptionGroupInput {
	inputs := make([]OptionGroupInput, len(groups))
	for i, g := range groups {
		inputs[i] = OptionGroupInput{Name: g.Name, Values: g.Values}
	}
	return inputs
}

// ToProductResponse converts a domain product to its response DTO.
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		DefaultPrice: p.DefaultPrice,
		Currency:     p.Currency,
		Status:       string(p.Status),
		OptionGroups: toOptionGroupInputs(p.OptionGroups),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToVariantResponse converts a domain variant to its response DTO.
func ToVariantResponse(v *catalog.Variant) VariantResponse {
	return VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Name:      v.Name,
		Signature: v.Signature,
		SKU:       v.SKU,
		Price:     v.Price,
		Active:    v.Active,
		Status:    string(v.Status),
		Version:   v.Version,
	}
}

// ToVariantResponses converts a slice of domain variants.
func ToVariantResponses(variants []*catalog.Variant) []VariantResponse {
	out := make([]VariantResponse, len(variants))
	for i, v := range variants {
		out[i] = ToVariantResponse(v)
	}
	return out
}
