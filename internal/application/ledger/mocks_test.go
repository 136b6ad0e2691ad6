package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/ledger"
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

type mockBatchRepository struct {
	mock.Mock
	createdBatches []*ledger.StockBatch
}

func (m *mockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.StockBatch), args.Error(1)
}

func (m *mockBatchRepository) FindByBatchNo(ctx context.Context, batchNo string) (*ledger.StockBatch, error) {
	args := m.Called(ctx, batchNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.StockBatch), args.Error(1)
}

func (m *mockBatchRepository) FindSellableForUpdate(ctx context.Context, skuID uuid.UUID) ([]*ledger.StockBatch, error) {
	args := m.Called(ctx, skuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.StockBatch), args.Error(1)
}

func (m *mockBatchRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*ledger.StockBatch, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.StockBatch), args.Error(1)
}

func (m *mockBatchRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockBatch], error) {
	args := m.Called(ctx, skuID, filter)
	return args.Get(0).(shared.Paginated[ledger.StockBatch]), args.Error(1)
}

func (m *mockBatchRepository) FindExpiring(ctx context.Context, cutoff time.Time) ([]*ledger.StockBatch, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.StockBatch), args.Error(1)
}

func (m *mockBatchRepository) SumQtyBySKU(ctx context.Context, skuID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, skuID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockBatchRepository) Save(ctx context.Context, batch *ledger.StockBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *mockBatchRepository) Create(ctx context.Context, batch *ledger.StockBatch) error {
	m.createdBatches = append(m.createdBatches, batch)
	args := m.Called(ctx, batch)
	return args.Error(0)
}

type mockMovementRepository struct {
	mock.Mock
	created []*ledger.StockMovement
}

func (m *mockMovementRepository) Create(ctx context.Context, movement *ledger.StockMovement) error {
	m.created = append(m.created, movement)
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *mockMovementRepository) CreateAll(ctx context.Context, movements []*ledger.StockMovement) error {
	m.created = append(m.created, movements...)
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *mockMovementRepository) FindBySKU(ctx context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockMovement], error) {
	args := m.Called(ctx, skuID, filter)
	return args.Get(0).(shared.Paginated[ledger.StockMovement]), args.Error(1)
}

func (m *mockMovementRepository) FindByReference(ctx context.Context, reference string) ([]*ledger.StockMovement, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.StockMovement), args.Error(1)
}

type mockSequenceAllocator struct {
	mock.Mock
}

func (m *mockSequenceAllocator) Next(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
	published []shared.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.published = append(m.published, events...)
	args := m.Called(ctx, events)
	return args.Error(0)
}
