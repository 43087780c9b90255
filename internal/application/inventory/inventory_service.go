package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/growbro/backend/internal/domain/inventory"
	"github.com/growbro/backend/internal/domain/shared"
	"github.com/growbro/backend/internal/infrastructure/telemetry"
)

// InventoryService handles warehouses, stock levels, and the movement ledger.
type InventoryService struct {
	warehouseRepo inventory.WarehouseRepository
	stockItemRepo inventory.StockItemRepository
	movementRepo  inventory.StockMovementRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	warehouseRepo inventory.WarehouseRepository,
	stockItemRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *InventoryService {
	return &InventoryService{
		warehouseRepo: warehouseRepo,
		stockItemRepo: stockItemRepo,
		movementRepo:  movementRepo,
	}
}

// CreateWarehouse creates a warehouse. The first warehouse an org creates
// becomes the default regardless of the request flag.
func (s *InventoryService) CreateWarehouse(ctx context.Context, orgID uuid.UUID, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	isDefault := req.IsDefault
	if _, err := s.warehouseRepo.FindDefault(ctx, orgID); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		isDefault = true
	}

	warehouse, err := inventory.NewWarehouse(orgID, req.Name, req.Code, isDefault)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return ToWarehouseResponse(warehouse), nil
}

// ListWarehouses returns all of an org's warehouses.
func (s *InventoryService) ListWarehouses(ctx context.Context, orgID uuid.UUID) ([]*WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]*WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		out[i] = ToWarehouseResponse(w)
	}
	return out, nil
}

// findOrCreateItem loads the stock row for a warehouse-variant pair, creating
// a zero row on first touch.
func (s *InventoryService) findOrCreateItem(ctx context.Context, orgID uuid.UUID, req StockAdjustmentRequest) (*inventory.StockItem, bool, error) {
	item, err := s.stockItemRepo.FindByWarehouseAndVariant(ctx, orgID, req.WarehouseID, req.VariantID)
	if err == nil {
		return item, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}
	item, err = inventory.NewStockItem(orgID, req.WarehouseID, req.VariantID)
	if err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (s *InventoryService) persist(ctx context.Context, item *inventory.StockItem, isNew bool, movement *inventory.StockMovement) (*StockItemResponse, error) {
	if isNew {
		if err := s.stockItemRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	} else {
		if err := s.stockItemRepo.Update(ctx, item); err != nil {
			return nil, err
		}
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}
	return ToStockItemResponse(item), nil
}

// Receive books incoming stock against a warehouse-variant pair.
func (s *InventoryService) Receive(ctx context.Context, orgID uuid.UUID, req StockAdjustmentRequest) (*StockItemResponse, error) {
	item, isNew, err := s.findOrCreateItem(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	movement, err := item.Receive(req.Quantity, req.Reason, req.Reference)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, item, isNew, movement)
}

// Issue books outgoing stock, failing on overdraw.
func (s *InventoryService) Issue(ctx context.Context, orgID uuid.UUID, req StockAdjustmentRequest) (*StockItemResponse, error) {
	item, err := s.stockItemRepo.FindByWarehouseAndVariant(ctx, orgID, req.WarehouseID, req.VariantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInsufficientStock
		}
		return nil, err
	}
	movement, err := item.Issue(req.Quantity, req.Reason, req.Reference)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, item, false, movement)
}

// Adjust sets the absolute on-hand count after a stock take.
func (s *InventoryService) Adjust(ctx context.Context, orgID uuid.UUID, req StockAdjustmentRequest) (*StockItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "adjust_stock")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrWarehouseID, req.WarehouseID.String(),
	)

	item, isNew, err := s.findOrCreateItem(ctx, orgID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	movement, err := item.Adjust(req.Quantity, req.Reason, req.Reference)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.persist(ctx, item, isNew, movement)
}

// StockByVariant returns all stock rows of one variant across warehouses.
func (s *InventoryService) StockByVariant(ctx context.Context, orgID, variantID uuid.UUID) ([]*StockItemResponse, error) {
	items, err := s.stockItemRepo.FindByVariant(ctx, orgID, variantID)
	if err != nil {
		return nil, err
	}
	out := make([]*StockItemResponse, len(items))
	for i, item := range items {
		out[i] = ToStockItemResponse(item)
	}
	return out, nil
}

// Ledger returns a page of movements for one stock item, newest first.
func (s *InventoryService) Ledger(ctx context.Context, orgID, stockItemID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	page, err := s.movementRepo.FindByStockItem(ctx, orgID, stockItemID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToMovementResponses(page.Items), page.Total, nil
}
