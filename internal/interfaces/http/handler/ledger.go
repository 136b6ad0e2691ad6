package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgerapp "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
)

// parseDate parses a date in RFC3339 or plain ISO date form
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// LedgerHandler exposes the stock ledger operations
type LedgerHandler struct {
	BaseHandler
	service *ledgerapp.Service
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(service *ledgerapp.Service) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// RegisterRoutes registers the ledger endpoints
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/purchase", h.Purchase)
		stock.POST("/adjust", h.Adjust)
		stock.POST("/consume", h.Consume)
		stock.POST("/return", h.Return)
		stock.POST("/batches/:batchNo/expire", h.ExpireBatch)

		stock.POST("/skus/:code/recompute", h.RecomputeStock)
		stock.GET("/skus/:code/availability", h.CheckAvailability)
		stock.GET("/batches/expiring", h.ListExpiringBatches)
		stock.GET("/skus/:code/batches", h.ListBatches)
		stock.GET("/skus/:code/movements", h.ListMovements)
	}
}

// PurchaseRequest is the request body for receiving stock
type PurchaseRequest struct {
	SKUCode         string  `json:"sku_code" binding:"required"`
	BatchNo         string  `json:"batch_no"`
	Qty             float64 `json:"qty" binding:"required,gt=0"`
	UnitCost        float64 `json:"unit_cost" binding:"omitempty,gte=0"`
	ManufactureDate string  `json:"manufacture_date"`
	Operator        string  `json:"operator" binding:"required"`
	Remark          string  `json:"remark" binding:"max=255"`
}

// Purchase receives stock into a new or existing batch
func (h *LedgerHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	cmd := ledgerapp.PurchaseCommand{
		SKUCode:  req.SKUCode,
		BatchNo:  req.BatchNo,
		Qty:      decimal.NewFromFloat(req.Qty),
		UnitCost: decimal.NewFromFloat(req.UnitCost),
		Operator: req.Operator,
		Remark:   req.Remark,
	}
	if req.ManufactureDate != "" {
		manufactured, err := parseDate(req.ManufactureDate)
		if err != nil {
			h.BadRequest(c, "Invalid manufacture_date format")
			return
		}
		cmd.ManufactureDate = &manufactured
	}

	result, err := h.service.Purchase(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// AdjustRequest is the request body for a manual stock correction
type AdjustRequest struct {
	SKUCode  string  `json:"sku_code" binding:"required"`
	BatchNo  string  `json:"batch_no" binding:"required"`
	Qty      float64 `json:"qty" binding:"required,gt=0"`
	IsAdd    *bool   `json:"is_add" binding:"required"`
	Operator string  `json:"operator" binding:"required"`
	Remark   string  `json:"remark" binding:"max=255"`
}

// Adjust applies a manual stock correction
func (h *LedgerHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Adjust(c.Request.Context(), ledgerapp.AdjustCommand{
		SKUCode:  req.SKUCode,
		BatchNo:  req.BatchNo,
		Qty:      decimal.NewFromFloat(req.Qty),
		IsAdd:    *req.IsAdd,
		Operator: req.Operator,
		Remark:   req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ConsumeRequest is the request body for order fulfillment
type ConsumeRequest struct {
	SKUCode  string  `json:"sku_code" binding:"required"`
	Qty      float64 `json:"qty" binding:"required,gt=0"`
	OrderRef string  `json:"order_ref" binding:"max=128"`
	Operator string  `json:"operator" binding:"required"`
	Remark   string  `json:"remark" binding:"max=255"`
}

// Consume fulfills an order by consuming stock in FIFO order
func (h *LedgerHandler) Consume(c *gin.Context) {
	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Consume(c.Request.Context(), ledgerapp.ConsumeCommand{
		SKUCode:  req.SKUCode,
		Qty:      decimal.NewFromFloat(req.Qty),
		OrderRef: req.OrderRef,
		Operator: req.Operator,
		Remark:   req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReturnRequest is the request body for restocking a return. Batches
// are tried in the order given.
type ReturnRequest struct {
	SKUCode  string   `json:"sku_code" binding:"required"`
	Qty      float64  `json:"qty" binding:"required,gt=0"`
	BatchIDs []string `json:"batch_ids" binding:"required,min=1,dive,uuid"`
	Operator string   `json:"operator" binding:"required"`
	Remark   string   `json:"remark" binding:"max=255"`
}

// Return restocks returned quantity into the given batches
func (h *LedgerHandler) Return(c *gin.Context) {
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	batchIDs := make([]uuid.UUID, len(req.BatchIDs))
	for i, raw := range req.BatchIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid batch ID: "+raw)
			return
		}
		batchIDs[i] = id
	}

	result, err := h.service.Return(c.Request.Context(), ledgerapp.ReturnCommand{
		SKUCode:  req.SKUCode,
		Qty:      decimal.NewFromFloat(req.Qty),
		BatchIDs: batchIDs,
		Operator: req.Operator,
		Remark:   req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ExpireBatchRequest is the request body for a batch write-off
type ExpireBatchRequest struct {
	Operator string `json:"operator" binding:"required"`
	Remark   string `json:"remark" binding:"max=255"`
}

// ExpireBatch writes off a batch's remaining quantity
func (h *LedgerHandler) ExpireBatch(c *gin.Context) {
	var req ExpireBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.ExpireBatch(c.Request.Context(), ledgerapp.ExpireBatchCommand{
		BatchNo:  c.Param("batchNo"),
		Operator: req.Operator,
		Remark:   req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RecomputeStock resyncs the SKU aggregate from the batch sum
func (h *LedgerHandler) RecomputeStock(c *gin.Context) {
	result, err := h.service.RecomputeStock(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CheckAvailability reports whether the requested quantity is consumable
func (h *LedgerHandler) CheckAvailability(c *gin.Context) {
	qty, err := decimal.NewFromString(c.Query("qty"))
	if err != nil {
		h.BadRequest(c, "qty query parameter must be a number")
		return
	}

	result, err := h.service.CheckAvailability(c.Request.Context(), c.Param("code"), qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListExpiringBatches returns stocked batches expiring within ?days
// (default 30). days=0 lists batches already past their expiry date.
func (h *LedgerHandler) ListExpiringBatches(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "days query parameter must be a non-negative integer")
			return
		}
		days = parsed
	}

	batches, err := h.service.ListExpiringBatches(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// BatchListRequest holds the batch list query parameters
type BatchListRequest struct {
	dto.ListRequest
	HasStock *bool `form:"has_stock"`
	Expired  *bool `form:"expired"`
	Sellable *bool `form:"sellable"`
}

// ListBatches returns a SKU's batches
func (h *LedgerHandler) ListBatches(c *gin.Context) {
	var req BatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := listFilter(req.ListRequest)
	if req.HasStock != nil {
		filter.Filters["has_stock"] = *req.HasStock
	}
	if req.Expired != nil {
		filter.Filters["expired"] = *req.Expired
	}
	if req.Sellable != nil {
		filter.Filters["sellable"] = *req.Sellable
	}

	page, err := h.service.ListBatches(c.Request.Context(), c.Param("code"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MovementListRequest holds the ledger list query parameters
type MovementListRequest struct {
	dto.ListRequest
	Type      string `form:"type" binding:"omitempty,movementtype"`
	BatchID   string `form:"batch_id" binding:"omitempty,uuid"`
	Reference string `form:"reference" binding:"omitempty,max=128"`
}

// ListMovements returns a SKU's ledger rows
func (h *LedgerHandler) ListMovements(c *gin.Context) {
	var req MovementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := listFilter(req.ListRequest)
	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}
	if req.BatchID != "" {
		filter.Filters["batch_id"] = req.BatchID
	}
	if req.Reference != "" {
		filter.Filters["reference"] = req.Reference
	}

	page, err := h.service.ListMovements(c.Request.Context(), c.Param("code"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
