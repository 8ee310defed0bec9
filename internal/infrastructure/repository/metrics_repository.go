package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopledger-api/internal/domain/enum"
	domainRepo "github.com/sangkips/shopledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type metricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(db *gorm.DB) domainRepo.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) TotalRevenue(ctx context.Context, completedOnly bool) (int64, error) {
	var revenue int64
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE deleted_at IS NULL`
	if completedOnly {
		query += ` AND status = 1`
	}
	err := r.db.WithContext(ctx).Raw(query).Scan(&revenue).Error
	return revenue, err
}

func (r *metricsRepository) RevenueBetween(ctx context.Context, start, end time.Time, completedOnly bool) (int64, error) {
	var revenue int64
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE deleted_at IS NULL
		AND sale_date >= ? AND sale_date < ?`
	if completedOnly {
		query += ` AND status = 1`
	}
	err := r.db.WithContext(ctx).Raw(query, start, end).Scan(&revenue).Error
	return revenue, err
}

func (r *metricsRepository) ReceivableTotal(ctx context.Context) (int64, error) {
	var receivable int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE deleted_at IS NULL AND payment_status = ?
	`, int(enum.PaymentStatusPending)).Scan(&receivable).Error
	return receivable, err
}

func (r *metricsRepository) CountSales(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM sales WHERE deleted_at IS NULL
	`).Scan(&count).Error
	return count, err
}

func (r *metricsRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM products WHERE deleted_at IS NULL
	`).Scan(&count).Error
	return count, err
}

func (r *metricsRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM products
		WHERE deleted_at IS NULL AND active = true
		AND stock_quantity <= reorder_level
	`).Scan(&count).Error
	return count, err
}

func (r *metricsRepository) InventoryValuation(ctx context.Context) (int64, error) {
	var valuation int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(stock_quantity * cost_price), 0)
		FROM products
		WHERE deleted_at IS NULL AND active = true
	`).Scan(&valuation).Error
	return valuation, err
}

func (r *metricsRepository) TotalExpenses(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE deleted_at IS NULL
	`).Scan(&total).Error
	return total, err
}

func (r *metricsRepository) ExpensesBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE deleted_at IS NULL
		AND expense_date >= ? AND expense_date < ?
	`, start, end).Scan(&total).Error
	return total, err
}

func (r *metricsRepository) ExpensesByCategory(ctx context.Context) ([]domainRepo.CategoryTotal, error) {
	var results []domainRepo.CategoryTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT category, COALESCE(SUM(amount), 0) as total
		FROM expenses
		WHERE deleted_at IS NULL AND amount > 0
		GROUP BY category
		ORDER BY total DESC
	`).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *metricsRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM employees
		WHERE deleted_at IS NULL AND active = true
	`).Scan(&count).Error
	return count, err
}

func (r *metricsRepository) CashBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(balance), 0)
		FROM accounts
		WHERE deleted_at IS NULL AND type = ?
	`, "cash").Scan(&balance).Error
	return balance, err
}
