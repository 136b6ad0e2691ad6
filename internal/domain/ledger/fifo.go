package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BatchAllocation is one batch's share of a planned consumption
type BatchAllocation struct {
	Batch *StockBatch
	Qty   decimal.Decimal
}

// ConsumptionPlan is the result of allocating a requested quantity across
// batches. Shortfall is the portion that could not be covered.
type ConsumptionPlan struct {
	Allocations []BatchAllocation
	Requested   decimal.Decimal
	Allocated   decimal.Decimal
	Shortfall   decimal.Decimal
}

// IsFullyCovered reports whether the entire requested quantity was allocated
func (p *ConsumptionPlan) IsFullyCovered() bool {
	return p.Shortfall.IsZero()
}

// SortFIFO orders batches for consumption: earliest expiry first, batches
// without an expiry date last, ties broken by creation time.
func SortFIFO(batches []*StockBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		bi, bj := batches[i], batches[j]
		switch {
		case bi.ExpiryDate == nil && bj.ExpiryDate == nil:
			return bi.CreatedAt.Before(bj.CreatedAt)
		case bi.ExpiryDate == nil:
			return false
		case bj.ExpiryDate == nil:
			return true
		case !bi.ExpiryDate.Equal(*bj.ExpiryDate):
			return bi.ExpiryDate.Before(*bj.ExpiryDate)
		default:
			return bi.CreatedAt.Before(bj.CreatedAt)
		}
	})
}

// PlanConsumption allocates the requested quantity across the given batches
// in FIFO order. The plan does not mutate the batches; callers apply the
// allocations after deciding whether a shortfall is acceptable.
func PlanConsumption(batches []*StockBatch, requested decimal.Decimal) *ConsumptionPlan {
	plan := &ConsumptionPlan{
		Requested: requested,
		Allocated: decimal.Zero,
	}
	if !requested.IsPositive() {
		plan.Shortfall = decimal.Zero
		return plan
	}

	ordered := make([]*StockBatch, len(batches))
	copy(ordered, batches)
	SortFIFO(ordered)

	remaining := requested
	for _, batch := range ordered {
		if remaining.IsZero() {
			break
		}
		available := batch.AvailableQty()
		if !available.IsPositive() {
			continue
		}
		take := available
		if take.GreaterThan(remaining) {
			take = remaining
		}
		plan.Allocations = append(plan.Allocations, BatchAllocation{Batch: batch, Qty: take})
		plan.Allocated = plan.Allocated.Add(take)
		remaining = remaining.Sub(take)
	}
	plan.Shortfall = remaining
	return plan
}
