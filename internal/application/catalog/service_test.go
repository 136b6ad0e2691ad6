package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

type mockSKURepository struct {
	mock.Mock
}

func (m *mockSKURepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SKU), args.Error(1)
}

func (m *mockSKURepository) FindByCode(ctx context.Context, code string) (*catalog.SKU, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SKU), args.Error(1)
}

func (m *mockSKURepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.SKU], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[catalog.SKU]), args.Error(1)
}

func (m *mockSKURepository) Save(ctx context.Context, sku *catalog.SKU) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *mockSKURepository) Create(ctx context.Context, sku *catalog.SKU) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func newTestService() (*Service, *mockSKURepository) {
	repo := new(mockSKURepository)
	return NewService(repo, zap.NewNop()), repo
}

func TestService_CreateSKU(t *testing.T) {
	ctx := context.Background()

	t.Run("creates SKU with policy", func(t *testing.T) {
		service, repo := newTestService()
		repo.On("Create", ctx, mock.AnythingOfType("*catalog.SKU")).Return(nil)

		result, err := service.CreateSKU(ctx, CreateSKUCommand{
			Code:           "OIL-500",
			Name:           "Engine Oil 500ml",
			BrandCode:      "acm",
			SafetyStockQty: decimal.NewFromInt(10),
			MaxStockQty:    decimal.NewFromInt(500),
			ShelfLifeDays:  365,
		})

		require.NoError(t, err)
		assert.Equal(t, "OIL-500", result.Code)
		assert.Equal(t, "ACM", result.BrandCode)
		assert.True(t, result.StockQty.IsZero())
		assert.Equal(t, 365, result.ShelfLifeDays)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty brand code", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.CreateSKU(ctx, CreateSKUCommand{
			Code: "OIL-500",
			Name: "Engine Oil 500ml",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_BRAND_CODE", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects negative shelf life", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.CreateSKU(ctx, CreateSKUCommand{
			Code:          "OIL-500",
			Name:          "Engine Oil 500ml",
			BrandCode:     "ACM",
			ShelfLifeDays: -1,
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects safety stock above capacity", func(t *testing.T) {
		service, repo := newTestService()

		_, err := service.CreateSKU(ctx, CreateSKUCommand{
			Code:           "OIL-500",
			Name:           "Engine Oil 500ml",
			BrandCode:      "ACM",
			SafetyStockQty: decimal.NewFromInt(600),
			MaxStockQty:    decimal.NewFromInt(500),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STOCK_POLICY", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestService_UpdateStockPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("updates policy fields", func(t *testing.T) {
		service, repo := newTestService()
		sku, err := catalog.NewSKU("OIL-500", "Engine Oil 500ml", "ACM", "pcs")
		require.NoError(t, err)

		repo.On("FindByCode", ctx, "OIL-500").Return(sku, nil)
		repo.On("Save", ctx, sku).Return(nil)

		result, err := service.UpdateStockPolicy(ctx, "OIL-500", StockPolicyCommand{
			SafetyStockQty: decimal.NewFromInt(20),
			ReorderPoint:   decimal.NewFromInt(40),
			MaxStockQty:    decimal.NewFromInt(800),
			AllowBackorder: true,
			ShelfLifeDays:  180,
		})

		require.NoError(t, err)
		assert.True(t, result.AllowBackorder)
		assert.Equal(t, 180, result.ShelfLifeDays)
		assert.True(t, sku.MaxStockQty.Equal(decimal.NewFromInt(800)))
		repo.AssertExpectations(t)
	})

	t.Run("unknown SKU", func(t *testing.T) {
		service, repo := newTestService()
		repo.On("FindByCode", ctx, "MISSING").Return(nil, shared.ErrNotFound)

		_, err := service.UpdateStockPolicy(ctx, "MISSING", StockPolicyCommand{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_DeactivateSKU(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestService()
	sku, err := catalog.NewSKU("OIL-500", "Engine Oil 500ml", "ACM", "pcs")
	require.NoError(t, err)

	repo.On("FindByCode", ctx, "OIL-500").Return(sku, nil)
	repo.On("Save", ctx, sku).Return(nil)

	require.NoError(t, service.DeactivateSKU(ctx, "OIL-500"))
	assert.False(t, sku.Active)
	repo.AssertExpectations(t)
}

func TestService_ListSKUs(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestService()
	sku, err := catalog.NewSKU("OIL-500", "Engine Oil 500ml", "ACM", "pcs")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindAll", ctx, filter).Return(shared.NewPaginated([]catalog.SKU{*sku}, 1, 1, 20), nil)

	page, err := service.ListSKUs(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "OIL-500", page.Items[0].Code)
}
