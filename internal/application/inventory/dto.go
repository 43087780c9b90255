package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/growbro/backend/internal/domain/inventory"
)

// CreateWarehouseRequest is the payload for creating a warehouse.
type CreateWarehouseRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// StockAdjustmentRequest changes the stock of one variant at one warehouse.
// Exactly one interpretation applies per operation: Receive and Issue treat
// Quantity as a delta, Adjust treats it as the absolute new count.
type StockAdjustmentRequest struct {
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	VariantID   uuid.UUID       `json:"variant_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reason      string          `json:"reason"`
	Reference   string          `json:"reference"`
}

// WarehouseResponse is the outward view of a warehouse.
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsDefault bool      `json:"is_default"`
	Active    bool      `json:"active"`
}

// StockItemResponse is the outward view of a stock row.
type StockItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MovementResponse is one stock ledger entry.
type MovementResponse struct {
	ID                uuid.UUID       `json:"id"`
	StockItemID       uuid.UUID       `json:"stock_item_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	VariantID         uuid.UUID       `json:"variant_id"`
	Type              string          `json:"type"`
	Delta             decimal.Decimal `json:"delta"`
	ResultingQuantity decimal.Decimal `json:"resulting_quantity"`
	Reason            string          `json:"reason"`
	Reference         string          `json:"reference"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToWarehouseResponse converts a domain warehouse to its response DTO.
func ToWarehouseResponse(w *inventory.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		IsDefault: w.IsDefault,
		Active:    w.Active,
	}
}

// ToStockItemResponse converts a domain stock item to its response DTO.
func ToStockItemResponse(item *inventory.StockItem) *StockItemResponse {
	return &StockItemResponse{
		ID:          item.ID,
		WarehouseID: item.WarehouseID,
		VariantID:   item.VariantID,
		Quantity:    item.Quantity,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToMovementResponse converts a ledger entry to its response DTO.
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:                m.ID,
		StockItemID:       m.StockItemID,
		WarehouseID:       m.WarehouseID,
		VariantID:         m.VariantID,
		Type:              m.Type.String(),
		Delta:             m.Delta,
		ResultingQuantity: m.ResultingQuantity,
		Reason:            m.Reason,
		Reference:         m.Reference,
		CreatedAt:         m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of ledger entries.
func ToMovementResponses(movements []*inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = ToMovementResponse(m)
	}
	return out
}
