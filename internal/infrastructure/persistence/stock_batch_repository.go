package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
)

// fifoOrder sorts batches for consumption: earliest expiry first, no-expiry
// batches last, creation time as the tiebreaker.
const fifoOrder = "COALESCE(expiry_date, '9999-12-31') ASC, created_at ASC"

// GormStockBatchRepository implements ledger.StockBatchRepository using GORM
type GormStockBatchRepository struct {
	db *gorm.DB
}

// NewGormStockBatchRepository creates a new GormStockBatchRepository
func NewGormStockBatchRepository(db *gorm.DB) *GormStockBatchRepository {
	return &GormStockBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormStockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockBatch, error) {
	var batch ledger.StockBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByBatchNo finds a batch by its unique batch number
func (r *GormStockBatchRepository) FindByBatchNo(ctx context.Context, batchNo string) (*ledger.StockBatch, error) {
	var batch ledger.StockBatch
	if err := r.db.WithContext(ctx).First(&batch, "batch_no = ?", batchNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindSellableForUpdate retrieves the sellable, non-empty batches of a SKU
// in FIFO order, taking row locks so concurrent consumers serialize.
func (r *GormStockBatchRepository) FindSellableForUpdate(ctx context.Context, skuID uuid.UUID) ([]*ledger.StockBatch, error) {
	var batches []*ledger.StockBatch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sku_id = ? AND sellable = TRUE AND qty > 0", skuID).
		Order(fifoOrder).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByIDsForUpdate retrieves the given batches with row locks, preserving
// the order of the requested IDs.
func (r *GormStockBatchRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*ledger.StockBatch, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var batches []*ledger.StockBatch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&batches).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*ledger.StockBatch, len(batches))
	for _, batch := range batches {
		byID[batch.ID] = batch
	}
	ordered := make([]*ledger.StockBatch, 0, len(batches))
	for _, id := range ids {
		if batch, ok := byID[id]; ok {
			ordered = append(ordered, batch)
		}
	}
	return ordered, nil
}

// FindBySKU retrieves batches of a SKU matching the filter
func (r *GormStockBatchRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockBatch], error) {
	query := r.db.WithContext(ctx).Model(&ledger.StockBatch{}).Where("sku_id = ?", skuID)

	if hasStock, ok := filter.Filters["has_stock"]; ok && hasStock == true {
		query = query.Where("qty > 0")
	}
	if expired, ok := filter.Filters["expired"]; ok && expired == true {
		query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now())
	}
	if sellable, ok := filter.Filters["sellable"]; ok {
		query = query.Where("sellable = ?", sellable)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[ledger.StockBatch]{}, err
	}

	var batches []ledger.StockBatch
	if err := applyFilter(query, filter, StockBatchSortFields, fifoOrder).Find(&batches).Error; err != nil {
		return shared.Paginated[ledger.StockBatch]{}, err
	}
	return shared.NewPaginated(batches, total, filter.Page, filter.PageSize), nil
}

// FindExpiring retrieves stocked sellable batches expiring on or before
// the cutoff, earliest expiry first.
func (r *GormStockBatchRepository) FindExpiring(ctx context.Context, cutoff time.Time) ([]*ledger.StockBatch, error) {
	var batches []*ledger.StockBatch
	if err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ? AND sellable = TRUE AND qty > 0", cutoff).
		Order("expiry_date ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// SumQtyBySKU returns the authoritative total batch quantity for a SKU
func (r *GormStockBatchRepository) SumQtyBySKU(ctx context.Context, skuID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&ledger.StockBatch{}).
		Where("sku_id = ?", skuID).
		Select("COALESCE(SUM(qty), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save persists changes to a batch
func (r *GormStockBatchRepository) Save(ctx context.Context, batch *ledger.StockBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Create persists a new batch
func (r *GormStockBatchRepository) Create(ctx context.Context, batch *ledger.StockBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

var _ ledger.StockBatchRepository = (*GormStockBatchRepository)(nil)
