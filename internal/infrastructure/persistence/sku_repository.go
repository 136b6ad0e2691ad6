package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// GormSKURepository implements catalog.SKURepository using GORM
type GormSKURepository struct {
	db *gorm.DB
}

// NewGormSKURepository creates a new GormSKURepository
func NewGormSKURepository(db *gorm.DB) *GormSKURepository {
	return &GormSKURepository{db: db}
}

// FindByID finds a SKU by its ID
func (r *GormSKURepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SKU, error) {
	var sku catalog.SKU
	if err := r.db.WithContext(ctx).First(&sku, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// FindByCode finds a SKU by its unique code
func (r *GormSKURepository) FindByCode(ctx context.Context, code string) (*catalog.SKU, error) {
	var sku catalog.SKU
	if err := r.db.WithContext(ctx).First(&sku, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// FindAll retrieves SKUs matching the filter
func (r *GormSKURepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.SKU], error) {
	query := r.db.WithContext(ctx).Model(&catalog.SKU{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[catalog.SKU]{}, err
	}

	var skus []catalog.SKU
	if err := applyFilter(query, filter, SKUSortFields, "code ASC").Find(&skus).Error; err != nil {
		return shared.Paginated[catalog.SKU]{}, err
	}
	return shared.NewPaginated(skus, total, filter.Page, filter.PageSize), nil
}

// Save persists a SKU update, enforcing optimistic locking on the version
// column. A stale version returns shared.ErrConcurrencyConflict.
func (r *GormSKURepository) Save(ctx context.Context, sku *catalog.SKU) error {
	currentVersion := sku.GetVersion()
	sku.IncrementVersion()

	result := r.db.WithContext(ctx).Model(&catalog.SKU{}).
		Where("id = ? AND version = ?", sku.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":             sku.Name,
			"brand_code":       sku.BrandCode,
			"unit":             sku.Unit,
			"stock_qty":        sku.StockQty,
			"safety_stock_qty": sku.SafetyStockQty,
			"reorder_point":    sku.ReorderPoint,
			"max_stock_qty":    sku.MaxStockQty,
			"allow_backorder":  sku.AllowBackorder,
			"shelf_life_days":  sku.ShelfLifeDays,
			"active":           sku.Active,
			"version":          sku.GetVersion(),
			"updated_at":       sku.UpdatedAt,
		})
	if result.Error != nil {
		sku.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		sku.Version = currentVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Create persists a new SKU
func (r *GormSKURepository) Create(ctx context.Context, sku *catalog.SKU) error {
	err := r.db.WithContext(ctx).Create(sku).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return shared.ErrAlreadyExists
	}
	return err
}

var _ catalog.SKURepository = (*GormSKURepository)(nil)
