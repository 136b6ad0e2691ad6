package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ledgerapp "github.com/stockroom/backend/internal/application/ledger"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/ledger"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// Mock repositories

type mapSKURepository struct {
	skus      map[uuid.UUID]*catalog.SKU
	returnErr error
}

func newMapSKURepository() *mapSKURepository {
	return &mapSKURepository{skus: make(map[uuid.UUID]*catalog.SKU)}
}

func (r *mapSKURepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.SKU, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	sku, ok := r.skus[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return sku, nil
}

func (r *mapSKURepository) FindByCode(_ context.Context, code string) (*catalog.SKU, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	for _, sku := range r.skus {
		if sku.Code == code {
			return sku, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *mapSKURepository) FindAll(_ context.Context, filter shared.Filter) (shared.Paginated[catalog.SKU], error) {
	if r.returnErr != nil {
		return shared.Paginated[catalog.SKU]{}, r.returnErr
	}
	items := make([]catalog.SKU, 0, len(r.skus))
	for _, sku := range r.skus {
		items = append(items, *sku)
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *mapSKURepository) Save(_ context.Context, sku *catalog.SKU) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.skus[sku.ID] = sku
	return nil
}

func (r *mapSKURepository) Create(_ context.Context, sku *catalog.SKU) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.skus[sku.ID] = sku
	return nil
}

type mapBatchRepository struct {
	batches   map[uuid.UUID]*ledger.StockBatch
	returnErr error
}

func newMapBatchRepository() *mapBatchRepository {
	return &mapBatchRepository{batches: make(map[uuid.UUID]*ledger.StockBatch)}
}

func (r *mapBatchRepository) FindByID(_ context.Context, id uuid.UUID) (*ledger.StockBatch, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	batch, ok := r.batches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return batch, nil
}

func (r *mapBatchRepository) FindByBatchNo(_ context.Context, batchNo string) (*ledger.StockBatch, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	for _, batch := range r.batches {
		if batch.BatchNo == batchNo {
			return batch, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *mapBatchRepository) FindSellableForUpdate(_ context.Context, skuID uuid.UUID) ([]*ledger.StockBatch, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	var result []*ledger.StockBatch
	for _, batch := range r.batches {
		if batch.SKUID == skuID && batch.Sellable && batch.Qty.IsPositive() {
			result = append(result, batch)
		}
	}
	ledger.SortFIFO(result)
	return result, nil
}

func (r *mapBatchRepository) FindByIDsForUpdate(_ context.Context, ids []uuid.UUID) ([]*ledger.StockBatch, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	var result []*ledger.StockBatch
	for _, id := range ids {
		if batch, ok := r.batches[id]; ok {
			result = append(result, batch)
		}
	}
	return result, nil
}

func (r *mapBatchRepository) FindBySKU(_ context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockBatch], error) {
	if r.returnErr != nil {
		return shared.Paginated[ledger.StockBatch]{}, r.returnErr
	}
	var items []ledger.StockBatch
	for _, batch := range r.batches {
		if batch.SKUID == skuID {
			items = append(items, *batch)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *mapBatchRepository) FindExpiring(_ context.Context, cutoff time.Time) ([]*ledger.StockBatch, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	var result []*ledger.StockBatch
	for _, batch := range r.batches {
		if batch.ExpiryDate != nil && !batch.ExpiryDate.After(cutoff) && batch.Sellable && batch.Qty.IsPositive() {
			result = append(result, batch)
		}
	}
	ledger.SortFIFO(result)
	return result, nil
}

func (r *mapBatchRepository) SumQtyBySKU(_ context.Context, skuID uuid.UUID) (decimal.Decimal, error) {
	if r.returnErr != nil {
		return decimal.Zero, r.returnErr
	}
	total := decimal.Zero
	for _, batch := range r.batches {
		if batch.SKUID == skuID {
			total = total.Add(batch.Qty)
		}
	}
	return total, nil
}

func (r *mapBatchRepository) Save(_ context.Context, batch *ledger.StockBatch) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.batches[batch.ID] = batch
	return nil
}

func (r *mapBatchRepository) Create(_ context.Context, batch *ledger.StockBatch) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.batches[batch.ID] = batch
	return nil
}

type mapMovementRepository struct {
	movements []*ledger.StockMovement
	returnErr error
}

func newMapMovementRepository() *mapMovementRepository {
	return &mapMovementRepository{}
}

func (r *mapMovementRepository) Create(_ context.Context, movement *ledger.StockMovement) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.movements = append(r.movements, movement)
	return nil
}

func (r *mapMovementRepository) CreateAll(_ context.Context, movements []*ledger.StockMovement) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *mapMovementRepository) FindBySKU(_ context.Context, skuID uuid.UUID, filter shared.Filter) (shared.Paginated[ledger.StockMovement], error) {
	if r.returnErr != nil {
		return shared.Paginated[ledger.StockMovement]{}, r.returnErr
	}
	var items []ledger.StockMovement
	for _, movement := range r.movements {
		if movement.SKUID == skuID {
			items = append(items, *movement)
		}
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *mapMovementRepository) FindByReference(_ context.Context, reference string) ([]*ledger.StockMovement, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	var result []*ledger.StockMovement
	for _, movement := range r.movements {
		if movement.Reference == reference {
			result = append(result, movement)
		}
	}
	return result, nil
}

type fixedSequenceAllocator struct {
	last int
}

func (a *fixedSequenceAllocator) Next(_ context.Context, _ time.Time) (int, error) {
	a.last++
	return a.last, nil
}

// Test helper functions

func setupLedgerTestHandler() (*LedgerHandler, *mapSKURepository, *mapBatchRepository, *mapMovementRepository) {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	skuRepo := newMapSKURepository()
	batchRepo := newMapBatchRepository()
	movementRepo := newMapMovementRepository()

	scope := &ledgerapp.NoOpTransactionScope{Repos: &ledgerapp.StaticRepositories{
		SKURepo:      skuRepo,
		BatchRepo:    batchRepo,
		MovementRepo: movementRepo,
		SequenceRepo: &fixedSequenceAllocator{},
	}}
	service := ledgerapp.NewService(scope, skuRepo, batchRepo, movementRepo, nil, nil, nil, zap.NewNop())
	handler := NewLedgerHandler(service)

	return handler, skuRepo, batchRepo, movementRepo
}

func createTestSKU(code, brandCode string, stockQty decimal.Decimal) *catalog.SKU {
	sku, _ := catalog.NewSKU(code, "Test "+code, brandCode, "pcs")
	sku.StockQty = stockQty
	return sku
}

func createTestBatch(skuID uuid.UUID, batchNo string, qty decimal.Decimal, expiry *time.Time) *ledger.StockBatch {
	batch, _ := ledger.NewStockBatch(batchNo, skuID, qty, decimal.NewFromFloat(9.5), nil, expiry, "tester")
	return batch
}

func postJSON(t *testing.T, path string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Tests

func TestLedgerHandler_Purchase_NewBatch(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.Zero)
	skuRepo.skus[sku.ID] = sku

	w, c := postJSON(t, "/stock/purchase", PurchaseRequest{
		SKUCode:  "OIL-500",
		Qty:      100,
		UnitCost: 9.5,
		Operator: "alice",
	})

	handler.Purchase(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	wantPrefix := "ACM" + time.Now().Format("20060102") + "-001"
	assert.Equal(t, wantPrefix, data["batch_no"])
	assert.Equal(t, "100", data["stock_qty"])

	assert.Len(t, batchRepo.batches, 1)
	assert.Len(t, movementRepo.movements, 1)
	assert.True(t, sku.StockQty.Equal(decimal.NewFromInt(100)))
}

func TestLedgerHandler_Purchase_ExistingBatch(t *testing.T) {
	handler, skuRepo, batchRepo, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(40))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(40), nil)
	batchRepo.batches[batch.ID] = batch

	w, c := postJSON(t, "/stock/purchase", PurchaseRequest{
		SKUCode:  "OIL-500",
		BatchNo:  "ACM20250101-001",
		Qty:      60,
		Operator: "alice",
	})

	handler.Purchase(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, batchRepo.batches, 1)
	assert.True(t, batch.Qty.Equal(decimal.NewFromInt(100)))
	assert.True(t, sku.StockQty.Equal(decimal.NewFromInt(100)))
}

func TestLedgerHandler_Purchase_SKUNotFound(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w, c := postJSON(t, "/stock/purchase", PurchaseRequest{
		SKUCode:  "MISSING",
		Qty:      10,
		Operator: "alice",
	})

	handler.Purchase(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestLedgerHandler_Purchase_ValidationError(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w, c := postJSON(t, "/stock/purchase", map[string]interface{}{
		"sku_code": "OIL-500",
	})

	handler.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Details)
}

func TestLedgerHandler_Purchase_InvalidManufactureDate(t *testing.T) {
	handler, skuRepo, _, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.Zero)
	skuRepo.skus[sku.ID] = sku

	w, c := postJSON(t, "/stock/purchase", PurchaseRequest{
		SKUCode:         "OIL-500",
		Qty:             10,
		ManufactureDate: "not-a-date",
		Operator:        "alice",
	})

	handler.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerHandler_Adjust_DecreaseFloorsAtZero(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(30))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(30), nil)
	batchRepo.batches[batch.ID] = batch

	isAdd := false
	w, c := postJSON(t, "/stock/adjust", AdjustRequest{
		SKUCode:  "OIL-500",
		BatchNo:  "ACM20250101-001",
		Qty:      50,
		IsAdd:    &isAdd,
		Operator: "alice",
	})

	handler.Adjust(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "-30", data["applied_qty"])
	assert.Equal(t, "0", data["stock_qty"])

	require.Len(t, movementRepo.movements, 1)
	movement := movementRepo.movements[0]
	assert.Equal(t, ledger.MovementTypeAdjust, movement.Type)
	assert.True(t, movement.AfterQty.Equal(movement.BeforeQty.Add(movement.ChangeQty)))
}

func TestLedgerHandler_Adjust_MissingIsAdd(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w, c := postJSON(t, "/stock/adjust", map[string]interface{}{
		"sku_code": "OIL-500",
		"batch_no": "ACM20250101-001",
		"qty":      5,
		"operator": "alice",
	})

	handler.Adjust(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestLedgerHandler_Consume_FIFOAcrossBatches(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(70))
	skuRepo.skus[sku.ID] = sku

	soon := time.Now().AddDate(0, 1, 0)
	later := time.Now().AddDate(0, 6, 0)
	expiring := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(30), &soon)
	fresh := createTestBatch(sku.ID, "ACM20250201-002", decimal.NewFromInt(40), &later)
	batchRepo.batches[expiring.ID] = expiring
	batchRepo.batches[fresh.ID] = fresh

	w, c := postJSON(t, "/stock/consume", ConsumeRequest{
		SKUCode:  "OIL-500",
		Qty:      50,
		OrderRef: "SO-1001",
		Operator: "alice",
	})

	handler.Consume(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["batch_count"])
	assert.Equal(t, "20", data["stock_qty"])

	// earliest expiry is drained first
	assert.True(t, expiring.Qty.IsZero())
	assert.True(t, fresh.Qty.Equal(decimal.NewFromInt(20)))

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, ledger.MovementTypeSale, movementRepo.movements[0].Type)
	assert.Equal(t, "SO-1001", movementRepo.movements[0].Reference)
}

func TestLedgerHandler_Consume_InsufficientStock(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(10))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(10), nil)
	batchRepo.batches[batch.ID] = batch

	w, c := postJSON(t, "/stock/consume", ConsumeRequest{
		SKUCode:  "OIL-500",
		Qty:      25,
		Operator: "alice",
	})

	handler.Consume(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)

	// all-or-nothing: nothing was touched
	assert.True(t, batch.Qty.Equal(decimal.NewFromInt(10)))
	assert.True(t, sku.StockQty.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, movementRepo.movements)
}

func TestLedgerHandler_Consume_BackorderGoesNegative(t *testing.T) {
	handler, skuRepo, batchRepo, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(10))
	sku.AllowBackorder = true
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(10), nil)
	batchRepo.batches[batch.ID] = batch

	w, c := postJSON(t, "/stock/consume", ConsumeRequest{
		SKUCode:  "OIL-500",
		Qty:      25,
		Operator: "alice",
	})

	handler.Consume(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "-15", data["stock_qty"])
	assert.Equal(t, true, data["backordered"])
}

func TestLedgerHandler_Return_ReportsRemainingQty(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(80))
	require.NoError(t, sku.UpdateStockPolicy(decimal.Zero, decimal.Zero, decimal.NewFromInt(100), false))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(80), nil)
	batchRepo.batches[batch.ID] = batch

	w, c := postJSON(t, "/stock/return", ReturnRequest{
		SKUCode:  "OIL-500",
		Qty:      50,
		BatchIDs: []string{batch.ID.String()},
		Operator: "alice",
	})

	handler.Return(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "20", data["restocked_qty"])
	assert.Equal(t, "30", data["remaining_qty"])
	assert.Equal(t, "100", data["stock_qty"])

	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, ledger.MovementTypeReturn, movementRepo.movements[0].Type)
}

func TestLedgerHandler_Return_UnknownBatch(t *testing.T) {
	handler, skuRepo, _, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(10))
	skuRepo.skus[sku.ID] = sku

	w, c := postJSON(t, "/stock/return", ReturnRequest{
		SKUCode:  "OIL-500",
		Qty:      10,
		BatchIDs: []string{uuid.New().String()},
		Operator: "alice",
	})

	handler.Return(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerHandler_Return_MalformedBatchID(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w, c := postJSON(t, "/stock/return", map[string]interface{}{
		"sku_code":  "OIL-500",
		"qty":       10,
		"batch_ids": []string{"not-a-uuid"},
		"operator":  "alice",
	})

	handler.Return(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestLedgerHandler_ExpireBatch_Success(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(30))
	skuRepo.skus[sku.ID] = sku
	expired := time.Now().AddDate(0, 0, -1)
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(30), &expired)
	batchRepo.batches[batch.ID] = batch

	w, c := postJSON(t, "/stock/batches/ACM20250101-001/expire", ExpireBatchRequest{
		Operator: "alice",
	})
	c.Params = gin.Params{{Key: "batchNo", Value: "ACM20250101-001"}}

	handler.ExpireBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "30", data["written_off_qty"])
	assert.Equal(t, "0", data["stock_qty"])

	assert.True(t, batch.Qty.IsZero())
	assert.False(t, batch.Sellable)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, ledger.MovementTypeExpire, movementRepo.movements[0].Type)
}

func TestLedgerHandler_RecomputeStock_CorrectsDrift(t *testing.T) {
	handler, skuRepo, batchRepo, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(99))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(60), nil)
	batchRepo.batches[batch.ID] = batch

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/stock/skus/OIL-500/recompute", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.RecomputeStock(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "-39", data["drift"])
	assert.Equal(t, "60", data["stock_qty"])
	assert.Len(t, movementRepo.movements, 1)

	// a second run finds no drift and writes no ledger row
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request, _ = http.NewRequest(http.MethodPost, "/stock/skus/OIL-500/recompute", nil)
	c2.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.RecomputeStock(c2)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Len(t, movementRepo.movements, 1)
}

func TestLedgerHandler_CheckAvailability_Success(t *testing.T) {
	handler, skuRepo, batchRepo, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(25))
	skuRepo.skus[sku.ID] = sku
	batch := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(25), nil)
	batchRepo.batches[batch.ID] = batch

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/skus/OIL-500/availability?qty=30", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.CheckAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["available"])
	assert.Equal(t, "25", data["available_qty"])
}

func TestLedgerHandler_ListExpiringBatches_Success(t *testing.T) {
	handler, skuRepo, batchRepo, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(80))
	skuRepo.skus[sku.ID] = sku

	soon := time.Now().AddDate(0, 0, 5)
	later := time.Now().AddDate(0, 0, 90)
	expiring := createTestBatch(sku.ID, "ACM20250101-001", decimal.NewFromInt(30), &soon)
	healthy := createTestBatch(sku.ID, "ACM20250101-002", decimal.NewFromInt(50), &later)
	batchRepo.batches[expiring.ID] = expiring
	batchRepo.batches[healthy.ID] = healthy

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/batches/expiring?days=30", nil)

	handler.ListExpiringBatches(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data := resp.Data.([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "ACM20250101-001", first["batch_no"])
}

func TestLedgerHandler_ListExpiringBatches_InvalidDays(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/batches/expiring?days=-1", nil)

	handler.ListExpiringBatches(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerHandler_CheckAvailability_InvalidQty(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/skus/OIL-500/availability?qty=abc", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.CheckAvailability(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerHandler_ListBatches_Success(t *testing.T) {
	handler, skuRepo, batchRepo, _ := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(70))
	skuRepo.skus[sku.ID] = sku
	for i, qty := range []int64{30, 40} {
		batch := createTestBatch(sku.ID, ledger.FormatBatchNumber("ACM", time.Now(), i+1), decimal.NewFromInt(qty), nil)
		batchRepo.batches[batch.ID] = batch
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/skus/OIL-500/batches?page=1&page_size=20", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.ListBatches(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
}

func TestLedgerHandler_ListMovements_ByReference(t *testing.T) {
	handler, skuRepo, _, movementRepo := setupLedgerTestHandler()

	sku := createTestSKU("OIL-500", "ACM", decimal.NewFromInt(80))
	skuRepo.skus[sku.ID] = sku

	purchase, err := ledger.NewStockMovement(sku.ID, nil, ledger.MovementTypePurchase,
		decimal.NewFromInt(80), decimal.Zero, decimal.NewFromInt(80), "PO-1001", "", "alice")
	require.NoError(t, err)
	sale, err := ledger.NewStockMovement(sku.ID, nil, ledger.MovementTypeSale,
		decimal.NewFromInt(-20), decimal.NewFromInt(80), decimal.NewFromInt(60), "SO-2001", "", "alice")
	require.NoError(t, err)
	movementRepo.movements = append(movementRepo.movements, purchase, sale)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/skus/OIL-500/movements?reference=PO-1001", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.ListMovements(c)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestLedgerHandler_ListMovements_InvalidType(t *testing.T) {
	handler, _, _, _ := setupLedgerTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/stock/skus/OIL-500/movements?type=teleport", nil)
	c.Params = gin.Params{{Key: "code", Value: "OIL-500"}}

	handler.ListMovements(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}
