package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/shared"
)

// VariantStatus is the lifecycle state of a variant. Variants are never hard
// deleted; combinations that drop out of the matrix are archived so their
// sales history stays intact.
type VariantStatus string

const (
	VariantStatusActive   VariantStatus = "active"
	VariantStatusArchived VariantStatus = "archived"
)

// Variant is one sellable combination of a product's option values.
type Variant struct {
	shared.OrgAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_variants_product_sig" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Signature string          `gorm:"type:varchar(512);not null;uniqueIndex:idx_variants_product_sig,where:status <> 'archived'" json:"signature"`
	SKU       string          `gorm:"type:varchar(128);not null;index" json:"sku"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	Status    VariantStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
}

func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates an active variant from a generated combination.
func NewVariant(orgID, productID uuid.UUID, name, signature, sku string, price decimal.Decimal) (*Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT_NAME", "variant name cannot be empty")
	}
	if signature == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT_SIGNATURE", "variant signature cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VARIANT_PRICE", "variant price cannot be negative")
	}

	v := &Variant{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		ProductID:        productID,
		Name:             name,
		Signature:        signature,
		SKU:              strings.TrimSpace(sku),
		Price:            price,
		Active:           true,
		Status:           VariantStatusActive,
	}
	v.AddDomainEvent(NewVariantCreatedEvent(v))
	return v, nil
}

// Refresh carries the variant across a matrix regeneration: the display name
// and signature follow the new option spelling while identity, SKU, price,
// and the active flag stay untouched.
func (v *Variant) Refresh(name, signature string) {
	if v.Name == name && v.Signature == signature {
		return
	}
	v.Name = name
	v.Signature = signature
	v.IncrementVersion()
}

// UpdatePrice sets a variant-level price override.
func (v *Variant) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_VARIANT_PRICE", "variant price cannot be negative")
	}
	v.Price = price
	v.IncrementVersion()
	return nil
}

// UpdateSKU replaces the stock keeping unit. Uniqueness within the org is
// enforced at the persistence layer.
func (v *Variant) UpdateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_VARIANT_SKU", "variant SKU cannot be empty")
	}
	v.SKU = sku
	v.IncrementVersion()
	return nil
}

// SetActive toggles whether the variant is offered for sale.
func (v *Variant) SetActive(active bool) {
	if v.Active == active {
		return
	}
	v.Active = active
	v.IncrementVersion()
}

// Archive removes the variant from the live matrix without deleting it.
// Archiving is idempotent.
func (v *Variant) Archive() {
	if v.Status == VariantStatusArchived {
		return
	}
	v.Status = VariantStatusArchived
	v.Active = false
	v.IncrementVersion()
	v.AddDomainEvent(NewVariantArchivedEvent(v))
}

// IsArchived reports whether the variant has been retired from the matrix.
func (v *Variant) IsArchived() bool {
	return v.Status == VariantStatusArchived
}
