package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/domain/shared/valueobject"
)

// ProductStatus is the lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is the catalog aggregate root. Option groups live on the product;
// its variants are generated from them and managed as a separate aggregate.
type Product struct {
	shared.OrgAggregateRoot
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"default_price"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	OptionGroups []OptionGroup   `gorm:"type:jsonb;serializer:json" json:"option_groups"`
}

func (Product) TableName() string {
	return "products"
}

// NewProduct creates an active product for the given org.
func NewProduct(orgID uuid.UUID, title, description string, defaultPrice valueobject.Money) (*Product, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TITLE", "product title cannot be empty")
	}
	if defaultPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_PRICE", "default price cannot be negative")
	}

	p := &Product{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Title:            title,
		Description:      strings.TrimSpace(description),
		DefaultPrice:     defaultPrice.Amount(),
		Currency:         string(defaultPrice.Currency()),
		Status:           ProductStatusActive,
		OptionGroups:     []OptionGroup{},
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// UpdateDetails changes the title, description, and default price.
func (p *Product) UpdateDetails(title, description string, defaultPrice valueobject.Money) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_PRODUCT_TITLE", "product title cannot be empty")
	}
	if defaultPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRODUCT_PRICE", "default price cannot be negative")
	}

	p.Title = title
	p.Description = strings.TrimSpace(description)
	p.DefaultPrice = defaultPrice.Amount()
	p.Currency = string(defaultPrice.Currency())
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetOptionGroups replaces the product's option matrix after validating it.
// An empty slice is allowed and means the product has no variant dimensions.
func (p *Product) SetOptionGroups(groups []OptionGroup) error {
	if err := ValidateOptionGroups(groups); err != nil {
		return err
	}
	p.OptionGroups = groups
	p.IncrementVersion()
	p.AddDomainEvent(NewProductOptionsChangedEvent(p))
	return nil
}

// Archive takes the product out of circulation. Archiving is idempotent.
func (p *Product) Archive() {
	if p.Status == ProductStatusArchived {
		return
	}
	p.Status = ProductStatusArchived
	p.IncrementVersion()
	p.AddDomainEvent(NewProductArchivedEvent(p))
}

// Restore brings an archived product back into circulation. Variants stay
// archived until the option matrix is applied again.
func (p *Product) Restore() {
	if p.Status == ProductStatusActive {
		return
	}
	p.Status = ProductStatusActive
	p.IncrementVersion()
	p.AddDomainEvent(NewProductRestoredEvent(p))
}

// IsActive reports whether the product can still be sold or edited.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Money returns the default price as a currency-aware value object.
func (p *Product) Money() (valueobject.Money, error) {
	return valueobject.NewMoney(p.DefaultPrice, valueobject.Currency(p.Currency))
}
