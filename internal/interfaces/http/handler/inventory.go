package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/growbro/backend/internal/application/inventory"
)

// InventoryHandler handles warehouse and stock API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateWarehouseRequest is the request body for creating a warehouse
type CreateWarehouseRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255" example:"Main Store"`
	Code      string `json:"code" binding:"required,min=1,max=64" example:"MAIN"`
	IsDefault bool   `json:"is_default" example:"true"`
}

// StockAdjustmentRequest is the request body for stock operations.
// Receive and Issue treat quantity as a delta; Adjust treats it as
// the absolute new count.
type StockAdjustmentRequest struct {
	WarehouseID string  `json:"warehouse_id" binding:"required,uuid"`
	VariantID   string  `json:"variant_id" binding:"required,uuid"`
	Quantity    float64 `json:"quantity" example:"5"`
	Reason      string  `json:"reason" binding:"max=255" example:"weekly delivery"`
	Reference   string  `json:"reference" binding:"max=255" example:"PO-1042"`
}

func (r StockAdjustmentRequest) toAppRequest() (inventoryapp.StockAdjustmentRequest, error) {
	warehouseID, err := uuid.Parse(r.WarehouseID)
	if err != nil {
		return inventoryapp.StockAdjustmentRequest{}, err
	}
	variantID, err := uuid.Parse(r.VariantID)
	if err != nil {
		return inventoryapp.StockAdjustmentRequest{}, err
	}
	return inventoryapp.StockAdjustmentRequest{
		WarehouseID: warehouseID,
		VariantID:   variantID,
		Quantity:    decimal.NewFromFloat(r.Quantity),
		Reason:      r.Reason,
		Reference:   r.Reference,
	}, nil
}

// CreateWarehouse godoc
// @Summary      Create a warehouse
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body CreateWarehouseRequest true "Warehouse creation request"
// @Success      201 {object} dto.Response{data=inventory.WarehouseResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/warehouses [post]
func (h *InventoryHandler) CreateWarehouse(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}

	var req CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	warehouse, err := h.inventoryService.CreateWarehouse(c.Request.Context(), orgID, inventoryapp.CreateWarehouseRequest{
		Name:      req.Name,
		Code:      req.Code,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// ListWarehouses godoc
// @Summary      List warehouses
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventory.WarehouseResponse}
// @Security     BearerAuth
// @Router       /inventory/warehouses [get]
func (h *InventoryHandler) ListWarehouses(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}

	warehouses, err := h.inventoryService.ListWarehouses(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouses)
}

// Receive godoc
// @Summary      Receive stock
// @Description  Increase stock of a variant at a warehouse and record an IN movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body StockAdjustmentRequest true "Stock receipt"
// @Success      200 {object} dto.Response{data=inventory.StockItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/receive [post]
func (h *InventoryHandler) Receive(c *gin.Context) {
	h.adjustStock(c, h.inventoryService.Receive)
}

// Issue godoc
// @Summary      Issue stock
// @Description  Decrease stock of a variant at a warehouse and record an OUT movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body StockAdjustmentRequest true "Stock issue"
// @Success      200 {object} dto.Response{data=inventory.StockItemResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/issue [post]
func (h *InventoryHandler) Issue(c *gin.Context) {
	h.adjustStock(c, h.inventoryService.Issue)
}

// Adjust godoc
// @Summary      Adjust stock
// @Description  Set the absolute stock count of a variant at a warehouse and record an ADJUST movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body StockAdjustmentRequest true "Stock adjustment"
// @Success      200 {object} dto.Response{data=inventory.StockItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /inventory/stock/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	h.adjustStock(c, h.inventoryService.Adjust)
}

// stockOperation is the shared shape of Receive, Issue, and Adjust
type stockOperation func(ctx context.Context, orgID uuid.UUID, req inventoryapp.StockAdjustmentRequest) (*inventoryapp.StockItemResponse, error)

func (h *InventoryHandler) adjustStock(c *gin.Context, op stockOperation) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}

	var req StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	appReq, err := req.toAppRequest()
	if err != nil {
		h.BadRequest(c, "Invalid warehouse or variant ID")
		return
	}

	item, err := op(c.Request.Context(), orgID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// StockByVariant godoc
// @Summary      Get stock for a variant
// @Description  List stock levels of one variant across all warehouses
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Variant ID"
// @Success      200 {object} dto.Response{data=[]inventory.StockItemResponse}
// @Security     BearerAuth
// @Router       /inventory/stock/variant/{id} [get]
func (h *InventoryHandler) StockByVariant(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	variantID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	items, err := h.inventoryService.StockByVariant(c.Request.Context(), orgID, variantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Ledger godoc
// @Summary      Get a stock item's movement ledger
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock item ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        type query string false "Filter by movement type (IN, OUT, ADJUST)"
// @Success      200 {object} dto.Response{data=[]inventory.MovementResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /inventory/stock/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	stockItemID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}
	if movementType := c.Query("type"); movementType != "" {
		filter.Filters = map[string]interface{}{"type": movementType}
	}

	movements, total, err := h.inventoryService.Ledger(c.Request.Context(), orgID, stockItemID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
