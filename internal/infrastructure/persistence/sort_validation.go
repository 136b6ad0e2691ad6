package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC, falling
// back to ASC. Anything that is not exactly "desc" (any case) sorts
// ascending, so injected input can never reach the order-by clause.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField checks a requested sort column against the entity's
// allowlist and returns the fallback when the column is unknown. Column
// names are matched exactly; there is no case folding.
func ValidateSortField(sortField string, allowed map[string]bool, fallback string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowed[trimmed] {
		return trimmed
	}
	return fallback
}

// SKUSortFields lists the sku columns accepted in order-by clauses
var SKUSortFields = map[string]bool{
	"code":             true,
	"name":             true,
	"brand_code":       true,
	"stock_qty":        true,
	"safety_stock_qty": true,
	"reorder_point":    true,
	"created_at":       true,
	"updated_at":       true,
}

// StockBatchSortFields lists the stock_batches columns accepted in
// order-by clauses
var StockBatchSortFields = map[string]bool{
	"batch_no":    true,
	"qty":         true,
	"unit_cost":   true,
	"expiry_date": true,
	"created_at":  true,
	"updated_at":  true,
}

// StockMovementSortFields lists the stock_movements columns accepted in
// order-by clauses
var StockMovementSortFields = map[string]bool{
	"type":       true,
	"change_qty": true,
	"moved_at":   true,
	"created_at": true,
}
