package persistence

import (
	"context"

	"gorm.io/gorm"

	appledger "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/ledger"
)

// GormTransactionScope runs ledger units of work inside a single database
// transaction. All repositories handed to the callback share the one
// transaction, so row locks taken by one are held for all.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the callback inside a transaction. Any error rolls the whole
// unit of work back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{
			skus:      NewGormSKURepository(tx),
			batches:   NewGormStockBatchRepository(tx),
			movements: NewGormStockMovementRepository(tx),
			sequences: NewGormSequenceAllocator(tx),
		})
	})
}

// txRepositories binds all repositories to one transaction
type txRepositories struct {
	skus      *GormSKURepository
	batches   *GormStockBatchRepository
	movements *GormStockMovementRepository
	sequences *GormSequenceAllocator
}

// SKUs returns the transaction-bound SKU repository
func (r *txRepositories) SKUs() catalog.SKURepository { return r.skus }

// Batches returns the transaction-bound batch repository
func (r *txRepositories) Batches() ledger.StockBatchRepository { return r.batches }

// Movements returns the transaction-bound movement repository
func (r *txRepositories) Movements() ledger.StockMovementRepository { return r.movements }

// Sequences returns the transaction-bound sequence allocator
func (r *txRepositories) Sequences() ledger.SequenceAllocator { return r.sequences }

var _ appledger.TransactionScope = (*GormTransactionScope)(nil)
