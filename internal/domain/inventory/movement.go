package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/shared"
)

// MovementType classifies a stock ledger entry.
type MovementType string

const (
	// MovementTypeIn records stock received into a warehouse.
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut records stock issued out of a warehouse.
	MovementTypeOut MovementType = "OUT"
	// MovementTypeAdjust records a correction to an absolute count.
	MovementTypeAdjust MovementType = "ADJUST"
)

func (t MovementType) String() string {
	return string(t)
}

// IsValid reports whether the movement type is one of the known values.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return true
	}
	return false
}

// StockMovement is one immutable entry in the stock ledger. Movements are
// append only; correcting a mistake means writing a compensating movement.
type StockMovement struct {
	shared.OrgAggregateRoot
	StockItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        MovementType    `gorm:"type:varchar(16);not null"`
	Delta       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// ResultingQuantity is the on-hand count immediately after this movement,
	// denormalized so the ledger reads without replaying.
	ResultingQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason            string          `gorm:"type:varchar(255)"`
	// Reference points at the triggering document, e.g. an order or stock
	// take identifier.
	Reference string `gorm:"type:varchar(255);index"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records the given delta against a stock item. The item's
// quantity must already reflect the delta.
func NewStockMovement(item *StockItem, movementType MovementType, delta decimal.Decimal, reason, reference string) *StockMovement {
	return &StockMovement{
		OrgAggregateRoot:  shared.NewOrgAggregateRoot(item.OrgID),
		StockItemID:       item.ID,
		WarehouseID:       item.WarehouseID,
		VariantID:         item.VariantID,
		Type:              movementType,
		Delta:             delta,
		ResultingQuantity: item.Quantity,
		Reason:            reason,
		Reference:         reference,
	}
}
