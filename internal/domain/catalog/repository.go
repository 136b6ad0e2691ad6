package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockroom/backend/internal/domain/shared"
)

// SKURepository defines persistence operations for SKU aggregates
type SKURepository interface {
	// FindByID retrieves a SKU by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SKU, error)
	// FindByCode retrieves a SKU by its unique code
	FindByCode(ctx context.Context, code string) (*SKU, error)
	// FindAll retrieves SKUs matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[SKU], error)
	// Save persists a SKU, enforcing optimistic locking on the version column
	Save(ctx context.Context, sku *SKU) error
	// Create persists a new SKU
	Create(ctx context.Context, sku *SKU) error
}
