package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/growbro/backend/internal/application/catalog"
)

// VariantHandler handles variant matrix API endpoints
type VariantHandler struct {
	BaseHandler
	variantService *catalogapp.VariantService
}

// NewVariantHandler creates a new VariantHandler
func NewVariantHandler(variantService *catalogapp.VariantService) *VariantHandler {
	return &VariantHandler{variantService: variantService}
}

// MatrixRequest is the request body for previewing or applying an option matrix
// @Description Option groups describing the full variant matrix
type MatrixRequest struct {
	OptionGroups []OptionGroupRequest `json:"option_groups" binding:"required,min=1,dive"`
}

// OptionGroupRequest is one option dimension
type OptionGroupRequest struct {
	Name   string   `json:"name" binding:"required" example:"Size"`
	Values []string `json:"values" binding:"required,min=1" example:"S,M,L"`
}

// UpdateVariantRequest is the request body for editing a single variant
// @Description Fields are optional; only provided fields are changed
type UpdateVariantRequest struct {
	SKU    *string  `json:"sku" example:"TSHIRT-RED-M"`
	Price  *float64 `json:"price" binding:"omitempty,min=0" example:"19.99"`
	Active *bool    `json:"active" example:"true"`
}

func toMatrixRequest(req MatrixRequest) catalogapp.MatrixRequest {
	groups := make([]catalogapp.OptionGroupInput, len(req.OptionGroups))
	for i, g := range req.OptionGroups {
		groups[i] = catalogapp.OptionGroupInput{Name: g.Name, Values: g.Values}
	}
	return catalogapp.MatrixRequest{OptionGroups: groups}
}

// Preview godoc
// @Summary      Preview a variant matrix
// @Description  Compute the add/keep/archive outcome of an option matrix without persisting
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body MatrixRequest true "Option matrix"
// @Success      200 {object} dto.Response{data=catalog.MatrixPreviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/variants/preview [post]
func (h *VariantHandler) Preview(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	preview, err := h.variantService.Preview(c.Request.Context(), orgID, productID, toMatrixRequest(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// Apply godoc
// @Summary      Apply a variant matrix
// @Description  Reconcile the product's variants against an option matrix: create missing combinations, keep existing ones, archive removed ones
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body MatrixRequest true "Option matrix"
// @Success      200 {object} dto.Response{data=catalog.MatrixApplyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/variants/apply [post]
func (h *VariantHandler) Apply(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.variantService.Apply(c.Request.Context(), orgID, productID, toMatrixRequest(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListByProduct godoc
// @Summary      List a product's variants
// @Tags         variants
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        include_archived query bool false "Include archived variants"
// @Success      200 {object} dto.Response{data=[]catalog.VariantResponse}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/variants [get]
func (h *VariantHandler) ListByProduct(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	includeArchived := c.Query("include_archived") == "true"

	variants, err := h.variantService.ListByProduct(c.Request.Context(), orgID, productID, includeArchived)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variants)
}

// Update godoc
// @Summary      Update a variant
// @Description  Override a variant's SKU, price, or active flag
// @Tags         variants
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID"
// @Param        request body UpdateVariantRequest true "Variant update request"
// @Success      200 {object} dto.Response{data=catalog.VariantResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id} [patch]
func (h *VariantHandler) Update(c *gin.Context) {
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

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := catalogapp.UpdateVariantRequest{
		SKU:    req.SKU,
		Active: req.Active,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		appReq.Price = &price
	}

	variant, err := h.variantService.Update(c.Request.Context(), orgID, variantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}
