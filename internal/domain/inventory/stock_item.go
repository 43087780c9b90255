package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/shared"
)

// StockItem tracks the on-hand quantity of one variant at one warehouse.
// The composite identifier is WarehouseID + VariantID. Every quantity change
// goes through Apply so that a movement record is produced alongside it.
type StockItem struct {
	shared.OrgAggregateRoot
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_warehouse_variant,priority:1"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_warehouse_variant,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a stock row with zero quantity. New variants start at
// zero; receiving stock is a separate, recorded movement.
func NewStockItem(orgID, warehouseID, variantID uuid.UUID) (*StockItem, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "warehouse ID cannot be empty")
	}
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "variant ID cannot be empty")
	}
	return &StockItem{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		WarehouseID:      warehouseID,
		VariantID:        variantID,
		Quantity:         decimal.Zero,
	}, nil
}

// Receive adds stock and returns the movement to append to the ledger.
func (s *StockItem) Receive(quantity decimal.Decimal, reason, reference string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "receive quantity must be positive")
	}
	return s.apply(MovementTypeIn, quantity, reason, reference)
}

// Issue removes stock, failing when on-hand quantity would go negative.
func (s *StockItem) Issue(quantity decimal.Decimal, reason, reference string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "issue quantity must be positive")
	}
	if s.Quantity.LessThan(quantity) {
		return nil, shared.ErrInsufficientStock
	}
	return s.apply(MovementTypeOut, quantity.Neg(), reason, reference)
}

// Adjust sets the on-hand quantity to an absolute count, as after a stock
// take. The movement records the delta between old and new.
func (s *StockItem) Adjust(newQuantity decimal.Decimal, reason, reference string) (*StockMovement, error) {
	if newQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "adjusted quantity cannot be negative")
	}
	delta := newQuantity.Sub(s.Quantity)
	if delta.IsZero() {
		return nil, shared.NewDomainError("NO_CHANGE", "adjusted quantity equals current quantity")
	}
	return s.apply(MovementTypeAdjust, delta, reason, reference)
}

func (s *StockItem) apply(movementType MovementType, delta decimal.Decimal, reason, reference string) (*StockMovement, error) {
	s.Quantity = s.Quantity.Add(delta)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	movement := NewStockMovement(s, movementType, delta, reason, reference)
	s.AddDomainEvent(NewStockChangedEvent(s, movement))
	return movement, nil
}
