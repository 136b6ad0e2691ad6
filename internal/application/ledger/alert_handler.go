package ledger

import (
	"context"

	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
)

// StockAlertHandler reacts to replenishment signals from the ledger:
// stock dropping below the safety level and SKUs entering backorder.
// It logs them for operators; downstream automation can subscribe to
// the same events.
type StockAlertHandler struct {
	logger *zap.Logger
}

// NewStockAlertHandler creates a stock alert handler
func NewStockAlertHandler(logger *zap.Logger) *StockAlertHandler {
	return &StockAlertHandler{logger: logger.Named("stock_alerts")}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockAlertHandler) EventTypes() []string {
	return []string{
		ledger.EventTypeStockBelowSafety,
		ledger.EventTypeBackorderEntered,
	}
}

// Handle processes a stock alert event
func (h *StockAlertHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ledger.StockBelowSafetyEvent:
		h.logger.Warn("stock below safety level",
			zap.String("sku_code", e.SKUCode),
			zap.String("stock_qty", e.StockQty.String()),
			zap.String("safety_stock_qty", e.SafetyStockQty.String()))
	case *ledger.BackorderEnteredEvent:
		h.logger.Warn("SKU entered backorder",
			zap.String("sku_code", e.SKUCode),
			zap.String("stock_qty", e.StockQty.String()))
	}
	return nil
}

var _ shared.EventHandler = (*StockAlertHandler)(nil)
