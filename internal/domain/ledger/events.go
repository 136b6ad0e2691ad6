package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// Event types for the stock ledger
const (
	EventTypeStockPurchased   = "ledger.stock_purchased"
	EventTypeStockConsumed    = "ledger.stock_consumed"
	EventTypeStockReturned    = "ledger.stock_returned"
	EventTypeStockAdjusted    = "ledger.stock_adjusted"
	EventTypeStockExpired     = "ledger.stock_expired"
	EventTypeStockBelowSafety = "ledger.stock_below_safety"
	EventTypeBackorderEntered = "ledger.backorder_entered"
)

// StockPurchasedEvent is raised when a purchase creates a new batch
type StockPurchasedEvent struct {
	shared.BaseDomainEvent
	SKUCode  string          `json:"sku_code"`
	BatchNo  string          `json:"batch_no"`
	Qty      decimal.Decimal `json:"qty"`
	StockQty decimal.Decimal `json:"stock_qty"`
}

// NewStockPurchasedEvent creates a stock purchased event
func NewStockPurchasedEvent(skuID uuid.UUID, skuCode, batchNo string, qty, stockQty decimal.Decimal) *StockPurchasedEvent {
	return &StockPurchasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockPurchased, "SKU", skuID),
		SKUCode:         skuCode,
		BatchNo:         batchNo,
		Qty:             qty,
		StockQty:        stockQty,
	}
}

// StockConsumedEvent is raised when stock is consumed by a sale
type StockConsumedEvent struct {
	shared.BaseDomainEvent
	SKUCode    string          `json:"sku_code"`
	Qty        decimal.Decimal `json:"qty"`
	StockQty   decimal.Decimal `json:"stock_qty"`
	BatchCount int             `json:"batch_count"`
	Reference  string          `json:"reference"`
}

// NewStockConsumedEvent creates a stock consumed event
func NewStockConsumedEvent(skuID uuid.UUID, skuCode string, qty, stockQty decimal.Decimal, batchCount int, reference string) *StockConsumedEvent {
	return &StockConsumedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockConsumed, "SKU", skuID),
		SKUCode:         skuCode,
		Qty:             qty,
		StockQty:        stockQty,
		BatchCount:      batchCount,
		Reference:       reference,
	}
}

// StockReturnedEvent is raised when a return restocks batches
type StockReturnedEvent struct {
	shared.BaseDomainEvent
	SKUCode      string          `json:"sku_code"`
	RestockedQty decimal.Decimal `json:"restocked_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	StockQty     decimal.Decimal `json:"stock_qty"`
}

// NewStockReturnedEvent creates a stock returned event
func NewStockReturnedEvent(skuID uuid.UUID, skuCode string, restockedQty, remainingQty, stockQty decimal.Decimal) *StockReturnedEvent {
	return &StockReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReturned, "SKU", skuID),
		SKUCode:         skuCode,
		RestockedQty:    restockedQty,
		RemainingQty:    remainingQty,
		StockQty:        stockQty,
	}
}

// StockAdjustedEvent is raised when stock is manually adjusted
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	SKUCode      string          `json:"sku_code"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	AppliedQty   decimal.Decimal `json:"applied_qty"`
	StockQty     decimal.Decimal `json:"stock_qty"`
	Reason       string          `json:"reason"`
}

// NewStockAdjustedEvent creates a stock adjusted event
func NewStockAdjustedEvent(skuID uuid.UUID, skuCode string, requestedQty, appliedQty, stockQty decimal.Decimal, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "SKU", skuID),
		SKUCode:         skuCode,
		RequestedQty:    requestedQty,
		AppliedQty:      appliedQty,
		StockQty:        stockQty,
		Reason:          reason,
	}
}

// StockExpiredEvent is raised when an expired batch is written off
type StockExpiredEvent struct {
	shared.BaseDomainEvent
	SKUCode       string          `json:"sku_code"`
	BatchNo       string          `json:"batch_no"`
	WrittenOffQty decimal.Decimal `json:"written_off_qty"`
	StockQty      decimal.Decimal `json:"stock_qty"`
}

// NewStockExpiredEvent creates a stock expired event
func NewStockExpiredEvent(skuID uuid.UUID, skuCode, batchNo string, writtenOffQty, stockQty decimal.Decimal) *StockExpiredEvent {
	return &StockExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockExpired, "SKU", skuID),
		SKUCode:         skuCode,
		BatchNo:         batchNo,
		WrittenOffQty:   writtenOffQty,
		StockQty:        stockQty,
	}
}

// StockBelowSafetyEvent is raised when an operation drops stock below the safety level
type StockBelowSafetyEvent struct {
	shared.BaseDomainEvent
	SKUCode        string          `json:"sku_code"`
	StockQty       decimal.Decimal `json:"stock_qty"`
	SafetyStockQty decimal.Decimal `json:"safety_stock_qty"`
}

// NewStockBelowSafetyEvent creates a below-safety-stock event
func NewStockBelowSafetyEvent(skuID uuid.UUID, skuCode string, stockQty, safetyStockQty decimal.Decimal) *StockBelowSafetyEvent {
	return &StockBelowSafetyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowSafety, "SKU", skuID),
		SKUCode:         skuCode,
		StockQty:        stockQty,
		SafetyStockQty:  safetyStockQty,
	}
}

// BackorderEnteredEvent is raised when a consume drives the aggregate negative
type BackorderEnteredEvent struct {
	shared.BaseDomainEvent
	SKUCode  string          `json:"sku_code"`
	StockQty decimal.Decimal `json:"stock_qty"`
}

// NewBackorderEnteredEvent creates a backorder entered event
func NewBackorderEnteredEvent(skuID uuid.UUID, skuCode string, stockQty decimal.Decimal) *BackorderEnteredEvent {
	return &BackorderEnteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBackorderEntered, "SKU", skuID),
		SKUCode:         skuCode,
		StockQty:        stockQty,
	}
}
