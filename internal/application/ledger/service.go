package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
)

// fallbackBrandCode is used for batch numbers when a SKU has no brand
const fallbackBrandCode = "XX"

// MetricsRecorder records ledger operation metrics
type MetricsRecorder interface {
	RecordMovement(ctx context.Context, movementType string, qty float64)
	RecordInsufficientStock(ctx context.Context, skuCode string)
	RecordReturnOverflow(ctx context.Context, skuCode string, remainingQty float64)
}

// SKUCache is a read-through cache for SKU lookups on hot read paths.
// Writes to a SKU must invalidate its entry.
type SKUCache interface {
	Get(ctx context.Context, code string) (*catalog.SKU, error)
	Set(ctx context.Context, sku *catalog.SKU) error
	Invalidate(ctx context.Context, code string) error
}

// Service orchestrates all stock movements. It is the only writer of batch
// quantities, the SKU aggregate quantity, and the movement ledger; each
// operation runs inside a single transaction.
type Service struct {
	txScope      TransactionScope
	skuRepo      catalog.SKURepository
	batchRepo    ledger.StockBatchRepository
	movementRepo ledger.StockMovementRepository
	eventBus     shared.EventPublisher
	skuCache     SKUCache
	metrics      MetricsRecorder
	logger       *zap.Logger
}

// NewService creates a ledger service. skuCache and metrics may be nil.
func NewService(
	txScope TransactionScope,
	skuRepo catalog.SKURepository,
	batchRepo ledger.StockBatchRepository,
	movementRepo ledger.StockMovementRepository,
	eventBus shared.EventPublisher,
	skuCache SKUCache,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		txScope:      txScope,
		skuRepo:      skuRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
		eventBus:     eventBus,
		skuCache:     skuCache,
		metrics:      metrics,
		logger:       logger,
	}
}

// Purchase receives stock. Without a batch number a new batch is created
// with a generated number; with one, the quantity is added to that batch.
func (s *Service) Purchase(ctx context.Context, cmd PurchaseCommand) (*PurchaseResult, error) {
	if !cmd.Qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "purchase quantity must be positive")
	}
	if cmd.BatchNo != "" && !ledger.IsValidBatchNumber(cmd.BatchNo) {
		return nil, shared.NewDomainError("INVALID_BATCH_NO", "malformed batch number: "+cmd.BatchNo)
	}

	var (
		result *PurchaseResult
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sku, err := repos.SKUs().FindByCode(ctx, cmd.SKUCode)
		if err != nil {
			return err
		}

		var batch *ledger.StockBatch
		if cmd.BatchNo != "" {
			batch, err = repos.Batches().FindByBatchNo(ctx, cmd.BatchNo)
			if err != nil {
				return err
			}
			if batch.SKUID != sku.ID {
				return shared.NewDomainError("BATCH_SKU_MISMATCH", "batch does not belong to this SKU")
			}
			if err := batch.Receive(cmd.Qty, cmd.Operator); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
		} else {
			batch, err = s.createBatch(ctx, repos, sku, cmd)
			if err != nil {
				return err
			}
		}

		before := sku.StockQty
		if err := sku.AddStock(cmd.Qty); err != nil {
			return err
		}
		if err := repos.SKUs().Save(ctx, sku); err != nil {
			return err
		}

		movement, err := ledger.NewStockMovement(sku.ID, &batch.ID, ledger.MovementTypePurchase,
			cmd.Qty, before, sku.StockQty, cmd.Remark, "", cmd.Operator)
		if err != nil {
			return err
		}
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}

		result = &PurchaseResult{
			SKUCode:  sku.Code,
			BatchNo:  batch.BatchNo,
			BatchID:  batch.ID,
			Qty:      cmd.Qty,
			StockQty: sku.StockQty,
		}
		events = append(events, ledger.NewStockPurchasedEvent(sku.ID, sku.Code, batch.BatchNo, cmd.Qty, sku.StockQty))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, cmd.SKUCode, string(ledger.MovementTypePurchase), cmd.Qty, events)
	return result, nil
}

func (s *Service) createBatch(ctx context.Context, repos TransactionalRepositories, sku *catalog.SKU, cmd PurchaseCommand) (*ledger.StockBatch, error) {
	brandCode := sku.BrandCode
	if brandCode == "" {
		brandCode = fallbackBrandCode
	}
	gen := ledger.NewBatchNumberGenerator(repos.Sequences())
	batchNo, err := gen.Generate(ctx, brandCode, time.Now())
	if err != nil {
		return nil, err
	}

	var expiry *time.Time
	if cmd.ManufactureDate != nil {
		expiry = sku.ExpiryFor(*cmd.ManufactureDate)
	}

	batch, err := ledger.NewStockBatch(batchNo, sku.ID, cmd.Qty, cmd.UnitCost, cmd.ManufactureDate, expiry, cmd.Operator)
	if err != nil {
		return nil, err
	}
	if err := repos.Batches().Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Adjust applies a manual correction. Increases target the named batch like
// a purchase. Decreases walk the SKU's batches in FIFO order regardless of
// the named batch; when the batches cannot cover the full decrease and the
// SKU disallows backorders, the aggregate floors at zero and the ledger row
// records the delta that was actually applied.
func (s *Service) Adjust(ctx context.Context, cmd AdjustCommand) (*AdjustResult, error) {
	if !cmd.Qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "adjustment quantity must be positive")
	}
	if cmd.BatchNo == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NO", "adjustment requires a batch number")
	}

	var (
		result *AdjustResult
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sku, err := repos.SKUs().FindByCode(ctx, cmd.SKUCode)
		if err != nil {
			return err
		}
		batch, err := repos.Batches().FindByBatchNo(ctx, cmd.BatchNo)
		if err != nil {
			return err
		}
		if batch.SKUID != sku.ID {
			return shared.NewDomainError("BATCH_SKU_MISMATCH", "batch does not belong to this SKU")
		}

		before := sku.StockQty
		var applied decimal.Decimal
		if cmd.IsAdd {
			applied, err = s.adjustIncrease(ctx, repos, sku, batch, cmd)
		} else {
			applied, err = s.adjustDecrease(ctx, repos, sku, cmd)
		}
		if err != nil {
			return err
		}

		if err := repos.SKUs().Save(ctx, sku); err != nil {
			return err
		}
		movement, err := ledger.NewStockMovement(sku.ID, &batch.ID, ledger.MovementTypeAdjust,
			applied, before, sku.StockQty, cmd.Remark, cmd.Remark, cmd.Operator)
		if err != nil {
			return err
		}
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}

		result = &AdjustResult{
			SKUCode:      sku.Code,
			RequestedQty: cmd.Qty,
			AppliedQty:   applied,
			StockQty:     sku.StockQty,
		}
		events = append(events, ledger.NewStockAdjustedEvent(sku.ID, sku.Code, cmd.Qty, applied, sku.StockQty, cmd.Remark))
		events = s.appendSafetyEvents(events, sku)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, cmd.SKUCode, string(ledger.MovementTypeAdjust), cmd.Qty, events)
	return result, nil
}

func (s *Service) adjustIncrease(ctx context.Context, repos TransactionalRepositories, sku *catalog.SKU, batch *ledger.StockBatch, cmd AdjustCommand) (decimal.Decimal, error) {
	if err := batch.Receive(cmd.Qty, cmd.Operator); err != nil {
		return decimal.Zero, err
	}
	if err := repos.Batches().Save(ctx, batch); err != nil {
		return decimal.Zero, err
	}
	if err := sku.AddStock(cmd.Qty); err != nil {
		return decimal.Zero, err
	}
	return cmd.Qty, nil
}

func (s *Service) adjustDecrease(ctx context.Context, repos TransactionalRepositories, sku *catalog.SKU, cmd AdjustCommand) (decimal.Decimal, error) {
	batches, err := repos.Batches().FindSellableForUpdate(ctx, sku.ID)
	if err != nil {
		return decimal.Zero, err
	}

	plan := ledger.PlanConsumption(batches, cmd.Qty)
	for _, alloc := range plan.Allocations {
		if err := alloc.Batch.Consume(alloc.Qty, cmd.Operator); err != nil {
			return decimal.Zero, err
		}
		if err := repos.Batches().Save(ctx, alloc.Batch); err != nil {
			return decimal.Zero, err
		}
	}

	before := sku.StockQty
	var after decimal.Decimal
	if sku.AllowBackorder {
		after = before.Sub(cmd.Qty)
	} else {
		after = before.Sub(cmd.Qty)
		if after.IsNegative() {
			after = decimal.Zero
		}
	}
	sku.ResyncStock(after)
	return after.Sub(before), nil
}

// Consume fulfills an order. The walk is all-or-nothing: when the batches
// cannot cover the request and the SKU disallows backorders, nothing is
// touched and ErrInsufficientStock is returned.
func (s *Service) Consume(ctx context.Context, cmd ConsumeCommand) (*ConsumeResult, error) {
	if !cmd.Qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "consume quantity must be positive")
	}

	var (
		result *ConsumeResult
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sku, err := repos.SKUs().FindByCode(ctx, cmd.SKUCode)
		if err != nil {
			return err
		}
		batches, err := repos.Batches().FindSellableForUpdate(ctx, sku.ID)
		if err != nil {
			return err
		}

		plan := ledger.PlanConsumption(batches, cmd.Qty)
		if !plan.IsFullyCovered() && !sku.AllowBackorder {
			if s.metrics != nil {
				s.metrics.RecordInsufficientStock(ctx, sku.Code)
			}
			return shared.ErrInsufficientStock
		}

		for _, alloc := range plan.Allocations {
			if err := alloc.Batch.Consume(alloc.Qty, cmd.Operator); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, alloc.Batch); err != nil {
				return err
			}
		}

		before := sku.StockQty
		if err := sku.RemoveStock(cmd.Qty); err != nil {
			return err
		}
		if err := repos.SKUs().Save(ctx, sku); err != nil {
			return err
		}

		movement, err := ledger.NewStockMovement(sku.ID, nil, ledger.MovementTypeSale,
			cmd.Qty.Neg(), before, sku.StockQty, cmd.OrderRef, cmd.Remark, cmd.Operator)
		if err != nil {
			return err
		}
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}

		result = &ConsumeResult{
			SKUCode:     sku.Code,
			Qty:         cmd.Qty,
			StockQty:    sku.StockQty,
			BatchCount:  len(plan.Allocations),
			Backordered: sku.IsBackordered(),
		}
		events = append(events, ledger.NewStockConsumedEvent(sku.ID, sku.Code, cmd.Qty, sku.StockQty, len(plan.Allocations), cmd.OrderRef))
		if sku.IsBackordered() {
			events = append(events, ledger.NewBackorderEnteredEvent(sku.ID, sku.Code, sku.StockQty))
		}
		events = s.appendSafetyEvents(events, sku)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, cmd.SKUCode, string(ledger.MovementTypeSale), cmd.Qty, events)
	return result, nil
}

// Return restocks returned quantity into the supplied batches in the given
// priority order, one ledger row per touched batch, then resyncs the SKU
// aggregate from the authoritative batch sum. Quantity the batches could
// not absorb is reported back, not treated as an error.
func (s *Service) Return(ctx context.Context, cmd ReturnCommand) (*ReturnResult, error) {
	if !cmd.Qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "return quantity must be positive")
	}
	if len(cmd.BatchIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_BATCH_LIST", "return requires at least one batch")
	}

	var (
		result *ReturnResult
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sku, err := repos.SKUs().FindByCode(ctx, cmd.SKUCode)
		if err != nil {
			return err
		}
		batches, err := repos.Batches().FindByIDsForUpdate(ctx, cmd.BatchIDs)
		if err != nil {
			return err
		}
		if len(batches) != len(cmd.BatchIDs) {
			return shared.NewDomainError("INVALID_BATCH_LIST", "one or more batches do not exist")
		}
		for _, batch := range batches {
			if batch.SKUID != sku.ID {
				return shared.NewDomainError("BATCH_SKU_MISMATCH", "batch "+batch.BatchNo+" does not belong to this SKU")
			}
		}

		remaining := cmd.Qty
		running := sku.StockQty
		var movements []*ledger.StockMovement
		for _, batch := range batches {
			if !remaining.IsPositive() {
				break
			}
			accepted, err := batch.Restock(remaining, sku.MaxStockQty, cmd.Operator)
			if err != nil {
				return err
			}
			if !accepted.IsPositive() {
				continue
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}

			after := running.Add(accepted)
			movement, err := ledger.NewStockMovement(sku.ID, &batch.ID, ledger.MovementTypeReturn,
				accepted, running, after, cmd.Remark, "", cmd.Operator)
			if err != nil {
				return err
			}
			movements = append(movements, movement)
			running = after
			remaining = remaining.Sub(accepted)
		}
		if len(movements) > 0 {
			if err := repos.Movements().CreateAll(ctx, movements); err != nil {
				return err
			}
		}

		batchTotal, err := repos.Batches().SumQtyBySKU(ctx, sku.ID)
		if err != nil {
			return err
		}
		sku.ResyncStock(batchTotal)
		if err := repos.SKUs().Save(ctx, sku); err != nil {
			return err
		}

		restocked := cmd.Qty.Sub(remaining)
		result = &ReturnResult{
			SKUCode:      sku.Code,
			RestockedQty: restocked,
			RemainingQty: remaining,
			StockQty:     sku.StockQty,
		}
		events = append(events, ledger.NewStockReturnedEvent(sku.ID, sku.Code, restocked, remaining, sku.StockQty))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.RemainingQty.IsPositive() && s.metrics != nil {
		s.metrics.RecordReturnOverflow(ctx, cmd.SKUCode, result.RemainingQty.InexactFloat64())
	}
	s.afterCommit(ctx, cmd.SKUCode, string(ledger.MovementTypeReturn), result.RestockedQty, events)
	return result, nil
}

// ExpireBatch writes off the remaining quantity of a batch and removes it
// from the sellable pool. The aggregate is resynced from the batch sum.
func (s *Service) ExpireBatch(ctx context.Context, cmd ExpireBatchCommand) (*ExpireBatchResult, error) {
	if cmd.BatchNo == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NO", "batch number cannot be empty")
	}

	var (
		result *ExpireBatchResult
		events []shared.DomainEvent
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.Batches().FindByBatchNo(ctx, cmd.BatchNo)
		if err != nil {
			return err
		}
		sku, err := repos.SKUs().FindByID(ctx, batch.SKUID)
		if err != nil {
			return err
		}

		before := sku.StockQty
		written := batch.WriteOff(cmd.Operator)
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}

		batchTotal, err := repos.Batches().SumQtyBySKU(ctx, sku.ID)
		if err != nil {
			return err
		}
		sku.ResyncStock(batchTotal)
		if err := repos.SKUs().Save(ctx, sku); err != nil {
			return err
		}

		if written.IsPositive() {
			movement, err := ledger.NewStockMovement(sku.ID, &batch.ID, ledger.MovementTypeExpire,
				sku.StockQty.Sub(before), before, sku.StockQty, cmd.Remark, "expired", cmd.Operator)
			if err != nil {
				return err
			}
			if err := repos.Movements().Create(ctx, movement); err != nil {
				return err
			}
		}

		result = &ExpireBatchResult{
			SKUCode:       sku.Code,
			BatchNo:       batch.BatchNo,
			WrittenOffQty: written,
			StockQty:      sku.StockQty,
		}
		if written.IsPositive() {
			events = append(events, ledger.NewStockExpiredEvent(sku.ID, sku.Code, batch.BatchNo, written, sku.StockQty))
		}
		events = s.appendSafetyEvents(events, sku)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, result.SKUCode, string(ledger.MovementTypeExpire), result.WrittenOffQty, events)
	return result, nil
}

// RecomputeStock overwrites the SKU aggregate with the authoritative batch
// sum. Running it twice without intervening mutations is a no-op the second
// time; a ledger row is only written when drift was corrected.
func (s *Service) RecomputeStock(ctx context.Context, skuCode string) (*RecomputeResult, error) {
	var result *RecomputeResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sku, err := repos.SKUs().FindByCode(ctx, skuCode)
		if err != nil {
			return err
		}
		batchTotal, err := repos.Batches().SumQtyBySKU(ctx, sku.ID)
		if err != nil {
			return err
		}

		before := sku.StockQty
		drift := sku.ResyncStock(batchTotal)
		if !drift.IsZero() {
			if err := repos.SKUs().Save(ctx, sku); err != nil {
				return err
			}
			movement, err := ledger.NewStockMovement(sku.ID, nil, ledger.MovementTypeRecount,
				drift, before, sku.StockQty, "", "aggregate resync", "system")
			if err != nil {
				return err
			}
			if err := repos.Movements().Create(ctx, movement); err != nil {
				return err
			}
			s.logger.Warn("stock aggregate drift corrected",
				zap.String("sku_code", sku.Code),
				zap.String("drift", drift.String()))
		}

		result = &RecomputeResult{
			SKUCode:  sku.Code,
			StockQty: sku.StockQty,
			Drift:    drift,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Drift.IsZero() {
		s.invalidateCache(ctx, skuCode)
	}
	return result, nil
}

// CheckAvailability reports whether the requested quantity could be
// consumed right now. Reads go through the SKU cache when one is wired.
func (s *Service) CheckAvailability(ctx context.Context, skuCode string, qty decimal.Decimal) (*AvailabilityResult, error) {
	if !qty.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "requested quantity must be positive")
	}

	sku, err := s.lookupSKU(ctx, skuCode)
	if err != nil {
		return nil, err
	}
	available, err := s.batchRepo.SumQtyBySKU(ctx, sku.ID)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		SKUCode:        sku.Code,
		RequestedQty:   qty,
		AvailableQty:   available,
		Available:      sku.AllowBackorder || !qty.GreaterThan(available),
		AllowBackorder: sku.AllowBackorder,
	}, nil
}

// ListBatches returns the batches of a SKU
func (s *Service) ListBatches(ctx context.Context, skuCode string, filter shared.Filter) (shared.Paginated[BatchDTO], error) {
	sku, err := s.skuRepo.FindByCode(ctx, skuCode)
	if err != nil {
		return shared.Paginated[BatchDTO]{}, err
	}
	page, err := s.batchRepo.FindBySKU(ctx, sku.ID, filter)
	if err != nil {
		return shared.Paginated[BatchDTO]{}, err
	}

	items := make([]BatchDTO, len(page.Items))
	for i := range page.Items {
		items[i] = toBatchDTO(&page.Items[i])
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// ListExpiringBatches returns stocked sellable batches that expire within
// the given number of days, earliest expiry first. days = 0 lists batches
// already expired but not yet written off.
func (s *Service) ListExpiringBatches(ctx context.Context, days int) ([]BatchDTO, error) {
	if days < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "days must not be negative")
	}
	cutoff := time.Now().AddDate(0, 0, days)
	batches, err := s.batchRepo.FindExpiring(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	items := make([]BatchDTO, len(batches))
	for i, batch := range batches {
		items[i] = toBatchDTO(batch)
	}
	return items, nil
}

// ListMovements returns the ledger rows of a SKU
func (s *Service) ListMovements(ctx context.Context, skuCode string, filter shared.Filter) (shared.Paginated[MovementDTO], error) {
	sku, err := s.skuRepo.FindByCode(ctx, skuCode)
	if err != nil {
		return shared.Paginated[MovementDTO]{}, err
	}

	// A reference lookup returns every row carrying that document number,
	// scoped to the requested SKU.
	if reference, ok := filter.Filters["reference"].(string); ok && reference != "" {
		rows, err := s.movementRepo.FindByReference(ctx, reference)
		if err != nil {
			return shared.Paginated[MovementDTO]{}, err
		}
		items := make([]MovementDTO, 0, len(rows))
		for _, row := range rows {
			if row.SKUID != sku.ID {
				continue
			}
			items = append(items, toMovementDTO(row))
		}
		return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
	}

	page, err := s.movementRepo.FindBySKU(ctx, sku.ID, filter)
	if err != nil {
		return shared.Paginated[MovementDTO]{}, err
	}

	items := make([]MovementDTO, len(page.Items))
	for i := range page.Items {
		items[i] = toMovementDTO(&page.Items[i])
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

func (s *Service) lookupSKU(ctx context.Context, code string) (*catalog.SKU, error) {
	if s.skuCache != nil {
		if sku, err := s.skuCache.Get(ctx, code); err == nil && sku != nil {
			return sku, nil
		}
	}
	sku, err := s.skuRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if s.skuCache != nil {
		if err := s.skuCache.Set(ctx, sku); err != nil {
			s.logger.Debug("sku cache set failed", zap.String("sku_code", code), zap.Error(err))
		}
	}
	return sku, nil
}

func (s *Service) invalidateCache(ctx context.Context, skuCode string) {
	if s.skuCache == nil {
		return
	}
	if err := s.skuCache.Invalidate(ctx, skuCode); err != nil {
		s.logger.Debug("sku cache invalidation failed", zap.String("sku_code", skuCode), zap.Error(err))
	}
}

func (s *Service) appendSafetyEvents(events []shared.DomainEvent, sku *catalog.SKU) []shared.DomainEvent {
	if sku.IsBelowSafetyStock() {
		events = append(events, ledger.NewStockBelowSafetyEvent(sku.ID, sku.Code, sku.StockQty, sku.SafetyStockQty))
	}
	return events
}

func (s *Service) afterCommit(ctx context.Context, skuCode, movementType string, qty decimal.Decimal, events []shared.DomainEvent) {
	s.invalidateCache(ctx, skuCode)
	if s.metrics != nil {
		s.metrics.RecordMovement(ctx, movementType, qty.InexactFloat64())
	}
	if len(events) > 0 && s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish ledger events",
				zap.String("sku_code", skuCode),
				zap.String("movement_type", movementType),
				zap.Error(err))
		}
	}
	s.logger.Info("ledger operation committed",
		zap.String("sku_code", skuCode),
		zap.String("movement_type", movementType),
		zap.String("qty", qty.String()))
}
