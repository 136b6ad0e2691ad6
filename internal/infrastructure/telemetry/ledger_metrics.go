package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	appledger "github.com/stockroom/backend/internal/application/ledger"
)

// LedgerMetrics records counters for stock movements and the two soft
// failure modes: consume requests that could not be covered and return
// quantities that overflowed batch capacity.
type LedgerMetrics struct {
	movementTotal          *Counter
	movementQtyTotal       *FloatCounter
	insufficientStockTotal *Counter
	returnOverflowTotal    *Counter
	returnOverflowQty      *FloatCounter
}

// NewLedgerMetrics creates the ledger counters on the given meter
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	m := &LedgerMetrics{}
	var err error

	m.movementTotal, err = NewCounter(
		meter,
		"stockroom_movement_total",
		"Total number of stock movements recorded",
		"{movements}",
	)
	if err != nil {
		return nil, err
	}

	m.movementQtyTotal, err = NewFloatCounter(
		meter,
		"stockroom_movement_qty_total",
		"Total absolute quantity moved",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	m.insufficientStockTotal, err = NewCounter(
		meter,
		"stockroom_insufficient_stock_total",
		"Consume requests rejected for insufficient stock",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	m.returnOverflowTotal, err = NewCounter(
		meter,
		"stockroom_return_overflow_total",
		"Return requests that exceeded batch capacity",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	m.returnOverflowQty, err = NewFloatCounter(
		meter,
		"stockroom_return_overflow_qty_total",
		"Total returned quantity that could not be restocked",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordMovement counts one ledger row of the given type
func (m *LedgerMetrics) RecordMovement(ctx context.Context, movementType string, qty float64) {
	m.movementTotal.Inc(ctx, AttrMovementType.String(movementType))
	if qty < 0 {
		qty = -qty
	}
	m.movementQtyTotal.Add(ctx, qty, AttrMovementType.String(movementType))
}

// RecordInsufficientStock counts a consume rejection for the SKU
func (m *LedgerMetrics) RecordInsufficientStock(ctx context.Context, skuCode string) {
	m.insufficientStockTotal.Inc(ctx, AttrSKUCode.String(skuCode))
}

// RecordReturnOverflow counts a return that left quantity unrestocked
func (m *LedgerMetrics) RecordReturnOverflow(ctx context.Context, skuCode string, remainingQty float64) {
	m.returnOverflowTotal.Inc(ctx, AttrSKUCode.String(skuCode))
	m.returnOverflowQty.Add(ctx, remainingQty, AttrSKUCode.String(skuCode))
}

var _ appledger.MetricsRecorder = (*LedgerMetrics)(nil)
