package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/backend/internal/domain/shared"
)

// StockBatchRepository defines persistence operations for stock batches
type StockBatchRepository interface {
	// FindByID retrieves a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockBatch, error)
	// FindByBatchNo retrieves a batch by its batch number
	FindByBatchNo(ctx context.Context, batchNo string) (*StockBatch, error)
	// FindSellableForUpdate retrieves the sellable, non-empty batches of a SKU
	// in FIFO order, locking the rows for the duration of the transaction
	FindSellableForUpdate(ctx context.Context, skuID uuid.UUID) ([]*StockBatch, error)
	// FindByIDsForUpdate retrieves the given batches, locking the rows.
	// The result preserves the order of the requested IDs.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*StockBatch, error)
	// FindBySKU retrieves batches of a SKU matching the filter
	FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[StockBatch], error)
	// FindExpiring retrieves stocked sellable batches whose expiry date
	// falls on or before the cutoff, earliest expiry first
	FindExpiring(ctx context.Context, cutoff time.Time) ([]*StockBatch, error)
	// SumQtyBySKU returns the authoritative total batch quantity for a SKU
	SumQtyBySKU(ctx context.Context, skuID uuid.UUID) (decimal.Decimal, error)
	// Save persists changes to a batch
	Save(ctx context.Context, batch *StockBatch) error
	// Create persists a new batch
	Create(ctx context.Context, batch *StockBatch) error
}

// StockMovementRepository defines persistence operations for the movement
// ledger. The ledger is append-only; there is no update or delete.
type StockMovementRepository interface {
	// Create appends a movement row
	Create(ctx context.Context, movement *StockMovement) error
	// CreateAll appends multiple movement rows
	CreateAll(ctx context.Context, movements []*StockMovement) error
	// FindBySKU retrieves movement rows for a SKU matching the filter
	FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[StockMovement], error)
	// FindByReference retrieves movement rows tagged with a reference
	FindByReference(ctx context.Context, reference string) ([]*StockMovement, error)
}
