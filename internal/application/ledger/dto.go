package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/ledger"
)

// PurchaseCommand receives stock into a new or existing batch
type PurchaseCommand struct {
	SKUCode         string
	BatchNo         string // empty = create a new batch with a generated number
	Qty             decimal.Decimal
	UnitCost        decimal.Decimal
	ManufactureDate *time.Time
	Operator        string
	Remark          string
}

// PurchaseResult reports the outcome of a purchase
type PurchaseResult struct {
	SKUCode  string          `json:"sku_code"`
	BatchNo  string          `json:"batch_no"`
	BatchID  uuid.UUID       `json:"batch_id"`
	Qty      decimal.Decimal `json:"qty"`
	StockQty decimal.Decimal `json:"stock_qty"`
}

// AdjustCommand applies a manual stock correction
type AdjustCommand struct {
	SKUCode  string
	BatchNo  string
	Qty      decimal.Decimal
	IsAdd    bool
	Operator string
	Remark   string
}

// AdjustResult reports the outcome of an adjustment. AppliedQty is the
// signed delta actually applied to the aggregate, which can be smaller in
// magnitude than the requested quantity when a decrease floors at zero.
type AdjustResult struct {
	SKUCode      string          `json:"sku_code"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	AppliedQty   decimal.Decimal `json:"applied_qty"`
	StockQty     decimal.Decimal `json:"stock_qty"`
}

// ConsumeCommand fulfills an order by consuming stock in FIFO order
type ConsumeCommand struct {
	SKUCode  string
	Qty      decimal.Decimal
	OrderRef string
	Operator string
	Remark   string
}

// ConsumeResult reports the outcome of a consumption
type ConsumeResult struct {
	SKUCode     string          `json:"sku_code"`
	Qty         decimal.Decimal `json:"qty"`
	StockQty    decimal.Decimal `json:"stock_qty"`
	BatchCount  int             `json:"batch_count"`
	Backordered bool            `json:"backordered"`
}

// ReturnCommand restocks returned quantity into the given batches, in the
// caller's priority order.
type ReturnCommand struct {
	SKUCode  string
	Qty      decimal.Decimal
	BatchIDs []uuid.UUID
	Operator string
	Remark   string
}

// ReturnResult reports the outcome of a return. RemainingQty is positive
// when the supplied batches lacked capacity for the full quantity; that is
// not an error, the caller decides what to do with the excess.
type ReturnResult struct {
	SKUCode      string          `json:"sku_code"`
	RestockedQty decimal.Decimal `json:"restocked_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	StockQty     decimal.Decimal `json:"stock_qty"`
}

// ExpireBatchCommand writes off an expired batch
type ExpireBatchCommand struct {
	BatchNo  string
	Operator string
	Remark   string
}

// ExpireBatchResult reports the outcome of a batch write-off
type ExpireBatchResult struct {
	SKUCode       string          `json:"sku_code"`
	BatchNo       string          `json:"batch_no"`
	WrittenOffQty decimal.Decimal `json:"written_off_qty"`
	StockQty      decimal.Decimal `json:"stock_qty"`
}

// RecomputeResult reports an aggregate resync
type RecomputeResult struct {
	SKUCode  string          `json:"sku_code"`
	StockQty decimal.Decimal `json:"stock_qty"`
	Drift    decimal.Decimal `json:"drift"`
}

// AvailabilityResult reports whether a quantity could be consumed right now
type AvailabilityResult struct {
	SKUCode        string          `json:"sku_code"`
	RequestedQty   decimal.Decimal `json:"requested_qty"`
	AvailableQty   decimal.Decimal `json:"available_qty"`
	Available      bool            `json:"available"`
	AllowBackorder bool            `json:"allow_backorder"`
}

// BatchDTO is the read model for a stock batch
type BatchDTO struct {
	ID              uuid.UUID       `json:"id"`
	BatchNo         string          `json:"batch_no"`
	SKUID           uuid.UUID       `json:"sku_id"`
	Qty             decimal.Decimal `json:"qty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Sellable        bool            `json:"sellable"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MovementDTO is the read model for a ledger row
type MovementDTO struct {
	ID        uuid.UUID       `json:"id"`
	SKUID     uuid.UUID       `json:"sku_id"`
	BatchID   *uuid.UUID      `json:"batch_id,omitempty"`
	Type      string          `json:"type"`
	ChangeQty decimal.Decimal `json:"change_qty"`
	BeforeQty decimal.Decimal `json:"before_qty"`
	AfterQty  decimal.Decimal `json:"after_qty"`
	Reference string          `json:"reference,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Operator  string          `json:"operator,omitempty"`
	MovedAt   time.Time       `json:"moved_at"`
}

func toBatchDTO(b *ledger.StockBatch) BatchDTO {
	return BatchDTO{
		ID:              b.ID,
		BatchNo:         b.BatchNo,
		SKUID:           b.SKUID,
		Qty:             b.Qty,
		UnitCost:        b.UnitCost,
		ManufactureDate: b.ManufactureDate,
		ExpiryDate:      b.ExpiryDate,
		Sellable:        b.Sellable,
		CreatedAt:       b.CreatedAt,
	}
}

func toMovementDTO(m *ledger.StockMovement) MovementDTO {
	return MovementDTO{
		ID:        m.ID,
		SKUID:     m.SKUID,
		BatchID:   m.BatchID,
		Type:      string(m.Type),
		ChangeQty: m.ChangeQty,
		BeforeQty: m.BeforeQty,
		AfterQty:  m.AfterQty,
		Reference: m.Reference,
		Reason:    m.Reason,
		Operator:  m.Operator,
		MovedAt:   m.MovedAt,
	}
}
