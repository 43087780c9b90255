package catalog

import (
	"github.com/growbro/backend/internal/domain/shared"
)

const (
	EventProductCreated        = "catalog.product.created"
	EventProductUpdated        = "catalog.product.updated"
	EventProductOptionsChanged = "catalog.product.options_changed"
	EventProductArchived       = "catalog.product.archived"
	EventProductRestored       = "catalog.product.restored"
	EventVariantCreated        = "catalog.variant.created"
	EventVariantArchived       = "catalog.variant.archived"
	EventVariantsReconciled    = "catalog.variants.reconciled"
)

type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductCreated, "Product", p.ID, p.OrgID),
		Title:           p.Title,
	}
}

type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
}

func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductUpdated, "Product", p.ID, p.OrgID),
	}
}

type ProductOptionsChangedEvent struct {
	shared.BaseDomainEvent
	GroupCount int `json:"group_count"`
}

func NewProductOptionsChangedEvent(p *Product) *ProductOptionsChangedEvent {
	return &ProductOptionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductOptionsChanged, "Product", p.ID, p.OrgID),
		GroupCount:      len(p.OptionGroups),
	}
}

type ProductArchivedEvent struct {
	shared.BaseDomainEvent
}

func NewProductArchivedEvent(p *Product) *ProductArchivedEvent {
	return &ProductArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductArchived, "Product", p.ID, p.OrgID),
	}
}

type ProductRestoredEvent struct {
	shared.BaseDomainEvent
}

func NewProductRestoredEvent(p *Product) *ProductRestoredEvent {
	return &ProductRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventProductRestored, "Product", p.ID, p.OrgID),
	}
}

type VariantCreatedEvent struct {
	shared.BaseDomainEvent
	Signature string `json:"signature"`
	SKU       string `json:"sku"`
}

func NewVariantCreatedEvent(v *Variant) *VariantCreatedEvent {
	return &VariantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventVariantCreated, "Variant", v.ID, v.OrgID),
		Signature:       v.Signature,
		SKU:             v.SKU,
	}
}

type VariantArchivedEvent struct {
	shared.BaseDomainEvent
	Signature string `json:"signature"`
}

func NewVariantArchivedEvent(v *Variant) *VariantArchivedEvent {
	return &VariantArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventVariantArchived, "Variant", v.ID, v.OrgID),
		Signature:       v.Signature,
	}
}
