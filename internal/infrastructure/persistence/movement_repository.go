package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormStockMovementRepository implements ledger.StockMovementRepository
// using GORM. The ledger is append-only: there is deliberately no update
// or delete here.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement row
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *ledger.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// CreateAll appends multiple movement rows
func (r *GormStockMovementRepository) CreateAll(ctx context.Context, movements []*ledger.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(movements).Error
}

// FindBySKU retrieves movement rows for a SKU matching the filter
func (r *GormStockMovementRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockMovement], error) {
	query := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).Where("sku_id = ?", skuID)

	if movType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", movType)
	}
	if batchID, ok := filter.Filters["batch_id"]; ok {
		query = query.Where("batch_id = ?", batchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[ledger.StockMovement]{}, err
	}

	var movements []ledger.StockMovement
	if err := applyFilter(query, filter, StockMovementSortFields, "moved_at DESC").Find(&movements).Error; err != nil {
		return shared.Paginated[ledger.StockMovement]{}, err
	}
	return shared.NewPaginated(movements, total, filter.Page, filter.PageSize), nil
}

// FindByReference retrieves movement rows tagged with a reference
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, reference string) ([]*ledger.StockMovement, error) {
	var movements []*ledger.StockMovement
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("moved_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ ledger.StockMovementRepository = (*GormStockMovementRepository)(nil)
