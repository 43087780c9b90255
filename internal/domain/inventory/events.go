package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/shared"
)

const (
	EventStockChanged = "inventory.stock.changed"
)

type StockChangedEvent struct {
	shared.BaseDomainEvent
	MovementType      MovementType    `json:"movement_type"`
	Delta             decimal.Decimal `json:"delta"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	Reason            string          `json:"reason"`
}

func NewStockChangedEvent(item *StockItem, movement *StockMovement) *StockChangedEvent {
	return &StockChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventStockChanged, "StockItem", item.ID, item.OrgID),
		MovementType:      movement.Type,
		Delta:             movement.Delta,
		ResultingQuantity: movement.ResultingQuantity,
		Reason:            movement.Reason,
	}
}
