// Package catalog holds the SKU management application service.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Service manages the SKU catalog. Stock quantities are owned by the
// ledger engine; this service only touches identity and policy fields.
type Service struct {
	skuRepo catalog.SKURepository
	logger  *zap.Logger
}

// NewService creates a catalog service
func NewService(skuRepo catalog.SKURepository, logger *zap.Logger) *Service {
	return &Service{skuRepo: skuRepo, logger: logger}
}

// CreateSKUCommand creates a new SKU
type CreateSKUCommand struct {
	Code           string
	Name           string
	BrandCode      string
	Unit           string
	SafetyStockQty decimal.Decimal
	ReorderPoint   decimal.Decimal
	MaxStockQty    decimal.Decimal
	AllowBackorder bool
	ShelfLifeDays  int
}

// StockPolicyCommand updates a SKU's replenishment and capacity settings
type StockPolicyCommand struct {
	SafetyStockQty decimal.Decimal
	ReorderPoint   decimal.Decimal
	MaxStockQty    decimal.Decimal
	AllowBackorder bool
	ShelfLifeDays  int
}

// CreateSKU registers a new SKU with zero stock
func (s *Service) CreateSKU(ctx context.Context, cmd CreateSKUCommand) (*SKUDTO, error) {
	sku, err := catalog.NewSKU(cmd.Code, cmd.Name, cmd.BrandCode, cmd.Unit)
	if err != nil {
		return nil, err
	}
	if err := sku.UpdateStockPolicy(cmd.SafetyStockQty, cmd.ReorderPoint, cmd.MaxStockQty, cmd.AllowBackorder); err != nil {
		return nil, err
	}
	if cmd.ShelfLifeDays < 0 {
		return nil, shared.NewDomainError("INVALID_SHELF_LIFE", "shelf life cannot be negative")
	}
	sku.ShelfLifeDays = cmd.ShelfLifeDays

	if err := s.skuRepo.Create(ctx, sku); err != nil {
		return nil, err
	}

	s.logger.Info("SKU created",
		zap.String("sku_code", sku.Code),
		zap.String("brand_code", sku.BrandCode))

	dto := toSKUDTO(sku)
	return &dto, nil
}

// GetSKU returns a SKU by code
func (s *Service) GetSKU(ctx context.Context, code string) (*SKUDTO, error) {
	sku, err := s.skuRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	dto := toSKUDTO(sku)
	return &dto, nil
}

// ListSKUs returns SKUs matching the filter
func (s *Service) ListSKUs(ctx context.Context, filter shared.Filter) (shared.Paginated[SKUDTO], error) {
	page, err := s.skuRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SKUDTO]{}, err
	}

	items := make([]SKUDTO, len(page.Items))
	for i := range page.Items {
		items[i] = toSKUDTO(&page.Items[i])
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateStockPolicy changes a SKU's replenishment and capacity settings
func (s *Service) UpdateStockPolicy(ctx context.Context, code string, cmd StockPolicyCommand) (*SKUDTO, error) {
	sku, err := s.skuRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := sku.UpdateStockPolicy(cmd.SafetyStockQty, cmd.ReorderPoint, cmd.MaxStockQty, cmd.AllowBackorder); err != nil {
		return nil, err
	}
	if cmd.ShelfLifeDays < 0 {
		return nil, shared.NewDomainError("INVALID_SHELF_LIFE", "shelf life cannot be negative")
	}
	sku.ShelfLifeDays = cmd.ShelfLifeDays

	if err := s.skuRepo.Save(ctx, sku); err != nil {
		return nil, err
	}

	dto := toSKUDTO(sku)
	return &dto, nil
}

// DeactivateSKU marks a SKU as inactive. Its batches and ledger history
// remain readable.
func (s *Service) DeactivateSKU(ctx context.Context, code string) error {
	sku, err := s.skuRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	sku.Deactivate()
	return s.skuRepo.Save(ctx, sku)
}
