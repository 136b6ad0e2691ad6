package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestLedgerMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("test")

	metrics, err := NewLedgerMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordMovement(ctx, "sale", -15)
	metrics.RecordMovement(ctx, "purchase", 100)
	metrics.RecordInsufficientStock(ctx, "WIDGET-001")
	metrics.RecordReturnOverflow(ctx, "WIDGET-001", 20)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	movement, ok := byName["stockroom_movement_total"]
	require.True(t, ok)
	sum, ok := movement.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	qty, ok := byName["stockroom_movement_qty_total"]
	require.True(t, ok)
	qtySum, ok := qty.Data.(metricdata.Sum[float64])
	require.True(t, ok)
	var qtyTotal float64
	for _, dp := range qtySum.DataPoints {
		qtyTotal += dp.Value
	}
	// sale quantity recorded as magnitude
	assert.InDelta(t, 115.0, qtyTotal, 0.001)

	_, ok = byName["stockroom_insufficient_stock_total"]
	assert.True(t, ok)
	_, ok = byName["stockroom_return_overflow_qty_total"]
	assert.True(t, ok)
}
