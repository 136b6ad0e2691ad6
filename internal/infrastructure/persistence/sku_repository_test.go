package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
)

// newMockDB creates a GORM DB backed by sqlmock with the postgres dialector
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func skuRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "version", "code", "name", "brand_code", "unit",
		"stock_qty", "safety_stock_qty", "reorder_point", "max_stock_qty",
		"allow_backorder", "shelf_life_days", "active",
	})
}

func TestGormSKURepository_FindByCode(t *testing.T) {
	t.Run("finds existing SKU", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSKURepository(gormDB)

		skuID := uuid.New()
		rows := skuRows().AddRow(
			skuID, 1, "WIDGET-001", "Widget", "ACM", "pcs",
			decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.Zero,
			false, 0, true,
		)

		mock.ExpectQuery(`SELECT \* FROM "skus" WHERE code = \$1`).
			WithArgs("WIDGET-001", 1).
			WillReturnRows(rows)

		sku, err := repo.FindByCode(context.Background(), "WIDGET-001")

		require.NoError(t, err)
		assert.Equal(t, skuID, sku.ID)
		assert.Equal(t, "ACM", sku.BrandCode)
		assert.True(t, sku.StockQty.Equal(decimal.NewFromInt(100)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing SKU to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSKURepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "skus" WHERE code = \$1`).
			WithArgs("GHOST", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sku, err := repo.FindByCode(context.Background(), "GHOST")

		assert.Nil(t, sku)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSKURepository_Save(t *testing.T) {
	t.Run("bumps version on successful save", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSKURepository(gormDB)

		sku, err := catalog.NewSKU("WIDGET-001", "Widget", "ACM", "pcs")
		require.NoError(t, err)
		require.Equal(t, 1, sku.GetVersion())

		mock.ExpectExec(`UPDATE "skus" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), sku)

		require.NoError(t, err)
		assert.Equal(t, 2, sku.GetVersion())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version yields concurrency conflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSKURepository(gormDB)

		sku, err := catalog.NewSKU("WIDGET-001", "Widget", "ACM", "pcs")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "skus" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Save(context.Background(), sku)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		// version rolled back so a retry can reload and start over
		assert.Equal(t, 1, sku.GetVersion())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
