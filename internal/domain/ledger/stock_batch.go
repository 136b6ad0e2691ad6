package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// StockBatch is a physical lot of a SKU received in one or more purchases.
// Batch quantities never go negative; the engine rejects any mutation that
// would drive one below zero.
type StockBatch struct {
	shared.BaseEntity
	BatchNo         string          `gorm:"uniqueIndex;size:32;not null"`
	SKUID           uuid.UUID       `gorm:"column:sku_id;type:uuid;index;not null"`
	Qty             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ManufactureDate *time.Time      `gorm:""`
	ExpiryDate      *time.Time      `gorm:"index"`
	Sellable        bool            `gorm:"not null;default:true"`
	Creator         string          `gorm:"size:64"`
	Reviser         string          `gorm:"size:64"`
}

// TableName returns the database table name
func (StockBatch) TableName() string {
	return "stock_batches"
}

// NewStockBatch creates a new batch for a received lot
func NewStockBatch(batchNo string, skuID uuid.UUID, qty, unitCost decimal.Decimal, manufactureDate, expiryDate *time.Time, creator string) (*StockBatch, error) {
	if batchNo == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NO", "batch number cannot be empty")
	}
	if !qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "batch quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "unit cost cannot be negative")
	}

	return &StockBatch{
		BaseEntity:      shared.NewBaseEntity(),
		BatchNo:         batchNo,
		SKUID:           skuID,
		Qty:             qty,
		UnitCost:        unitCost,
		ManufactureDate: manufactureDate,
		ExpiryDate:      expiryDate,
		Sellable:        true,
		Creator:         creator,
		Reviser:         creator,
	}, nil
}

// Receive adds purchased quantity to the batch without a capacity cap
func (b *StockBatch) Receive(qty decimal.Decimal, reviser string) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity to receive must be positive")
	}
	b.Qty = b.Qty.Add(qty)
	b.Reviser = reviser
	b.UpdatedAt = time.Now()
	return nil
}

// Consume removes quantity from the batch. The batch never goes negative;
// callers must size the request via AvailableQty.
func (b *StockBatch) Consume(qty decimal.Decimal, reviser string) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity to consume must be positive")
	}
	if qty.GreaterThan(b.Qty) {
		return shared.ErrInsufficientStock
	}
	b.Qty = b.Qty.Sub(qty)
	b.Reviser = reviser
	b.UpdatedAt = time.Now()
	return nil
}

// Restock returns quantity into the batch, capped at the remaining capacity
// the SKU's maximum stock policy leaves for this batch (maxStockQty of zero
// means unlimited). It returns how much was actually accepted.
func (b *StockBatch) Restock(qty, maxStockQty decimal.Decimal, reviser string) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "quantity to restock must be positive")
	}
	accepted := qty
	if maxStockQty.IsPositive() {
		capacity := b.RestockCapacity(maxStockQty)
		if accepted.GreaterThan(capacity) {
			accepted = capacity
		}
	}
	if !accepted.IsPositive() {
		return decimal.Zero, nil
	}
	b.Qty = b.Qty.Add(accepted)
	b.Reviser = reviser
	b.UpdatedAt = time.Now()
	return accepted, nil
}

// RestockCapacity returns how much quantity the batch can take back under
// the given maximum stock policy. A non-positive maximum means unlimited
// capacity, reported as zero here; callers check the policy first.
func (b *StockBatch) RestockCapacity(maxStockQty decimal.Decimal) decimal.Decimal {
	if !maxStockQty.IsPositive() {
		return decimal.Zero
	}
	capacity := maxStockQty.Sub(b.Qty)
	if capacity.IsNegative() {
		return decimal.Zero
	}
	return capacity
}

// AvailableQty returns the quantity available for consumption
func (b *StockBatch) AvailableQty() decimal.Decimal {
	if !b.Sellable {
		return decimal.Zero
	}
	return b.Qty
}

// IsExpired reports whether the batch has passed its expiry date
func (b *StockBatch) IsExpired(now time.Time) bool {
	return b.ExpiryDate != nil && !b.ExpiryDate.After(now)
}

// IsDepleted reports whether the batch is empty
func (b *StockBatch) IsDepleted() bool {
	return b.Qty.IsZero()
}

// WriteOff empties the batch and marks it unsellable, returning the
// quantity that was written off.
func (b *StockBatch) WriteOff(reviser string) decimal.Decimal {
	written := b.Qty
	b.Qty = decimal.Zero
	b.Sellable = false
	b.Reviser = reviser
	b.UpdatedAt = time.Now()
	return written
}
