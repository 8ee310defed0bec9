package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	domainRepo "github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a product repository over a mocked SQL connection
func newMockProductRepository(t *testing.T) (domainRepo.ProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewProductRepository(gormDB), mock, mockDB
}

func TestProductRepository_AdjustStock(t *testing.T) {
	t.Run("applies negative delta in one update", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1`).
			WithArgs(-3, sqlmock.AnyArg(), productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.AdjustStock(context.Background(), productID, -3)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing product when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1`).
			WithArgs(5, sqlmock.AnyArg(), productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := repo.AdjustStock(context.Background(), productID, 5)

		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_GetByIDs(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.GetByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loads products in a single query", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "sku", "stock_quantity"}).
			AddRow(id1, "Espresso Beans", "SKU-001", 20).
			AddRow(id2, "Filter Paper", "SKU-002", 50)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		products, err := repo.GetByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Espresso Beans", products[0].Name)
		assert.Equal(t, 20, products[0].StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMetricsRepository_TotalRevenue(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo := NewMetricsRepository(gormDB)

	t.Run("all sales when status column is unavailable", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\)\s+FROM sales\s+WHERE deleted_at IS NULL`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(150_000)))

		revenue, err := repo.TotalRevenue(context.Background(), false)

		assert.NoError(t, err)
		assert.Equal(t, int64(150_000), revenue)
	})

	t.Run("restricts to completed sales when requested", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\)\s+FROM sales\s+WHERE deleted_at IS NULL AND status = 1`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(120_000)))

		revenue, err := repo.TotalRevenue(context.Background(), true)

		assert.NoError(t, err)
		assert.Equal(t, int64(120_000), revenue)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
