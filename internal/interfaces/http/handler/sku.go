package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// SKUHandler exposes SKU catalog management
type SKUHandler struct {
	BaseHandler
	service *catalogapp.Service
}

// NewSKUHandler creates a new SKUHandler
func NewSKUHandler(service *catalogapp.Service) *SKUHandler {
	return &SKUHandler{service: service}
}

// RegisterRoutes registers the SKU endpoints
func (h *SKUHandler) RegisterRoutes(rg *gin.RouterGroup) {
	skus := rg.Group("/skus")
	{
		skus.POST("", h.Create)
		skus.GET("", h.List)
		skus.GET("/:code", h.Get)
		skus.PUT("/:code/policy", h.UpdateStockPolicy)
		skus.DELETE("/:code", h.Deactivate)
	}
}

// CreateSKURequest is the request body for registering a SKU
type CreateSKURequest struct {
	Code           string  `json:"code" binding:"required,max=64"`
	Name           string  `json:"name" binding:"required,max=255"`
	BrandCode      string  `json:"brand_code" binding:"required,max=16,alphanum"`
	Unit           string  `json:"unit" binding:"max=16"`
	SafetyStockQty float64 `json:"safety_stock_qty" binding:"omitempty,gte=0"`
	ReorderPoint   float64 `json:"reorder_point" binding:"omitempty,gte=0"`
	MaxStockQty    float64 `json:"max_stock_qty" binding:"omitempty,gte=0"`
	AllowBackorder bool    `json:"allow_backorder"`
	ShelfLifeDays  int     `json:"shelf_life_days" binding:"omitempty,gte=0"`
}

// Create registers a new SKU
func (h *SKUHandler) Create(c *gin.Context) {
	var req CreateSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.CreateSKU(c.Request.Context(), catalogapp.CreateSKUCommand{
		Code:           req.Code,
		Name:           req.Name,
		BrandCode:      req.BrandCode,
		Unit:           req.Unit,
		SafetyStockQty: decimal.NewFromFloat(req.SafetyStockQty),
		ReorderPoint:   decimal.NewFromFloat(req.ReorderPoint),
		MaxStockQty:    decimal.NewFromFloat(req.MaxStockQty),
		AllowBackorder: req.AllowBackorder,
		ShelfLifeDays:  req.ShelfLifeDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns a SKU by code
func (h *SKUHandler) Get(c *gin.Context) {
	result, err := h.service.GetSKU(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SKUListRequest holds the SKU list query parameters
type SKUListRequest struct {
	dto.ListRequest
	Active *bool `form:"active"`
}

// List returns SKUs matching the query
func (h *SKUHandler) List(c *gin.Context) {
	var req SKUListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := listFilter(req.ListRequest)
	if req.Active != nil {
		filter.Filters["active"] = *req.Active
	}

	page, err := h.service.ListSKUs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// StockPolicyRequest is the request body for updating a SKU's stock policy
type StockPolicyRequest struct {
	SafetyStockQty float64 `json:"safety_stock_qty" binding:"omitempty,gte=0"`
	ReorderPoint   float64 `json:"reorder_point" binding:"omitempty,gte=0"`
	MaxStockQty    float64 `json:"max_stock_qty" binding:"omitempty,gte=0"`
	AllowBackorder bool    `json:"allow_backorder"`
	ShelfLifeDays  int     `json:"shelf_life_days" binding:"omitempty,gte=0"`
}

// UpdateStockPolicy changes a SKU's replenishment and capacity settings
func (h *SKUHandler) UpdateStockPolicy(c *gin.Context) {
	var req StockPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.UpdateStockPolicy(c.Request.Context(), c.Param("code"), catalogapp.StockPolicyCommand{
		SafetyStockQty: decimal.NewFromFloat(req.SafetyStockQty),
		ReorderPoint:   decimal.NewFromFloat(req.ReorderPoint),
		MaxStockQty:    decimal.NewFromFloat(req.MaxStockQty),
		AllowBackorder: req.AllowBackorder,
		ShelfLifeDays:  req.ShelfLifeDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Deactivate marks a SKU as inactive
func (h *SKUHandler) Deactivate(c *gin.Context) {
	if err := h.service.DeactivateSKU(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
