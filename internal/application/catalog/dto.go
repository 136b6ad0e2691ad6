package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/catalog"
)

// SKUDTO is the read model for a SKU
type SKUDTO struct {
	ID               uuid.UUID       `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	BrandCode        string          `json:"brand_code"`
	Unit             string          `json:"unit"`
	StockQty         decimal.Decimal `json:"stock_qty"`
	SafetyStockQty   decimal.Decimal `json:"safety_stock_qty"`
	ReorderPoint     decimal.Decimal `json:"reorder_point"`
	MaxStockQty      decimal.Decimal `json:"max_stock_qty"`
	AllowBackorder   bool            `json:"allow_backorder"`
	ShelfLifeDays    int             `json:"shelf_life_days"`
	Active           bool            `json:"active"`
	BelowSafetyStock bool            `json:"below_safety_stock"`
	Backordered      bool            `json:"backordered"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toSKUDTO(sku *catalog.SKU) SKUDTO {
	return SKUDTO{
		ID:               sku.ID,
		Code:             sku.Code,
		Name:             sku.Name,
		BrandCode:        sku.BrandCode,
		Unit:             sku.Unit,
		StockQty:         sku.StockQty,
		SafetyStockQty:   sku.SafetyStockQty,
		ReorderPoint:     sku.ReorderPoint,
		MaxStockQty:      sku.MaxStockQty,
		AllowBackorder:   sku.AllowBackorder,
		ShelfLifeDays:    sku.ShelfLifeDays,
		Active:           sku.Active,
		BelowSafetyStock: sku.IsBelowSafetyStock(),
		Backordered:      sku.IsBackordered(),
		CreatedAt:        sku.CreatedAt,
		UpdatedAt:        sku.UpdatedAt,
	}
}
