package ledger

import (
	"context"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/ledger"
)

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	SKUs() catalog.SKURepository
	Batches() ledger.StockBatchRepository
	Movements() ledger.StockMovementRepository
	Sequences() ledger.SequenceAllocator
}

// TransactionScope runs a unit of work inside a single database transaction.
// The callback either commits as a whole or rolls back as a whole.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the callback against fixed repositories without
// any transactional boundary. Intended for tests.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// Execute runs the callback directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}

// StaticRepositories is a TransactionalRepositories backed by fixed instances
type StaticRepositories struct {
	SKURepo      catalog.SKURepository
	BatchRepo    ledger.StockBatchRepository
	MovementRepo ledger.StockMovementRepository
	SequenceRepo ledger.SequenceAllocator
}

// SKUs returns the SKU repository
func (r *StaticRepositories) SKUs() catalog.SKURepository { return r.SKURepo }

// Batches returns the stock batch repository
func (r *StaticRepositories) Batches() ledger.StockBatchRepository { return r.BatchRepo }

// Movements returns the stock movement repository
func (r *StaticRepositories) Movements() ledger.StockMovementRepository { return r.MovementRepo }

// Sequences returns the batch sequence allocator
func (r *StaticRepositories) Sequences() ledger.SequenceAllocator { return r.SequenceRepo }
