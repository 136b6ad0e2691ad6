package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// SKU is the aggregate root for a stock keeping unit. StockQty is the
// denormalized aggregate quantity and must always equal the sum of the
// quantities of the SKU's batches.
type SKU struct {
	shared.BaseAggregateRoot
	Code           string          `gorm:"uniqueIndex;size:64;not null"`
	Name           string          `gorm:"size:255;not null"`
	BrandCode      string          `gorm:"size:16;not null"`
	Unit           string          `gorm:"size:16;not null;default:'pcs'"`
	StockQty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SafetyStockQty decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderPoint   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MaxStockQty    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AllowBackorder bool            `gorm:"not null;default:false"`
	ShelfLifeDays  int             `gorm:"not null;default:0"`
	Active         bool            `gorm:"not null;default:true"`
}

// TableName returns the database table name
func (SKU) TableName() string {
	return "skus"
}

// NewSKU creates a new SKU aggregate
func NewSKU(code, name, brandCode, unit string) (*SKU, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_SKU_CODE", "SKU code cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SKU_NAME", "SKU name cannot be empty")
	}
	brandCode = strings.ToUpper(strings.TrimSpace(brandCode))
	if brandCode == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_CODE", "brand code cannot be empty")
	}
	if unit == "" {
		unit = "pcs"
	}

	return &SKU{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		BrandCode:         brandCode,
		Unit:              unit,
		StockQty:          decimal.Zero,
		SafetyStockQty:    decimal.Zero,
		ReorderPoint:      decimal.Zero,
		MaxStockQty:       decimal.Zero,
		Active:            true,
	}, nil
}

// AddStock increases the aggregate stock quantity
func (s *SKU) AddStock(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity to add cannot be negative")
	}
	s.StockQty = s.StockQty.Add(qty)
	s.UpdatedAt = time.Now()
	return nil
}

// RemoveStock decreases the aggregate stock quantity. Going below zero is
// only permitted when the SKU allows backorders.
func (s *SKU) RemoveStock(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "quantity to remove cannot be negative")
	}
	remaining := s.StockQty.Sub(qty)
	if remaining.IsNegative() && !s.AllowBackorder {
		return shared.ErrInsufficientStock
	}
	s.StockQty = remaining
	s.UpdatedAt = time.Now()
	return nil
}

// ResyncStock overwrites the aggregate quantity with an authoritative value
// computed from the SKU's batches, returning the drift that was corrected.
func (s *SKU) ResyncStock(batchTotal decimal.Decimal) decimal.Decimal {
	drift := batchTotal.Sub(s.StockQty)
	s.StockQty = batchTotal
	s.UpdatedAt = time.Now()
	return drift
}

// IsBelowSafetyStock reports whether the current stock is below the safety level
func (s *SKU) IsBelowSafetyStock() bool {
	return s.SafetyStockQty.IsPositive() && s.StockQty.LessThan(s.SafetyStockQty)
}

// IsBackordered reports whether the aggregate quantity is negative
func (s *SKU) IsBackordered() bool {
	return s.StockQty.IsNegative()
}

// HasCapacityLimit reports whether the SKU enforces a maximum stock quantity
func (s *SKU) HasCapacityLimit() bool {
	return s.MaxStockQty.IsPositive()
}

// RemainingCapacity returns how much more stock the SKU can hold, or zero
// when no capacity limit is configured.
func (s *SKU) RemainingCapacity() decimal.Decimal {
	if !s.HasCapacityLimit() {
		return decimal.Zero
	}
	capacity := s.MaxStockQty.Sub(s.StockQty)
	if capacity.IsNegative() {
		return decimal.Zero
	}
	return capacity
}

// ExpiryFor derives the expiry date for a batch received at the given time.
// SKUs without a shelf life produce batches that never expire.
func (s *SKU) ExpiryFor(receivedAt time.Time) *time.Time {
	if s.ShelfLifeDays <= 0 {
		return nil
	}
	expiry := receivedAt.AddDate(0, 0, s.ShelfLifeDays)
	return &expiry
}

// UpdateStockPolicy updates the replenishment and capacity settings
func (s *SKU) UpdateStockPolicy(safetyStock, reorderPoint, maxStock decimal.Decimal, allowBackorder bool) error {
	if safetyStock.IsNegative() || reorderPoint.IsNegative() || maxStock.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK_POLICY", "stock policy quantities cannot be negative")
	}
	if maxStock.IsPositive() && safetyStock.GreaterThan(maxStock) {
		return shared.NewDomainError("INVALID_STOCK_POLICY",
			fmt.Sprintf("safety stock %s exceeds maximum stock %s", safetyStock, maxStock))
	}
	s.SafetyStockQty = safetyStock
	s.ReorderPoint = reorderPoint
	s.MaxStockQty = maxStock
	s.AllowBackorder = allowBackorder
	s.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the SKU as inactive
func (s *SKU) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}
