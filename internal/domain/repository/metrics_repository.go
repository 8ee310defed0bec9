package repository

import (
	"context"
	"time"
)

// CategoryTotal is a per-category expense sum in cents
type CategoryTotal struct {
	Category string
	Total    int64
}

// MetricsRepository exposes the read-only aggregate queries behind the
// dashboard. All monetary results are in cents. Callers are expected to
// consult the resolved data-source capabilities before invoking queries
// against optional tables; the queries themselves assume their table exists.
type MetricsRepository interface {
	// TotalRevenue sums sale totals. When completedOnly is set the sum is
	// restricted to completed sales; callers pass false when the status
	// column is not available in the schema.
	TotalRevenue(ctx context.Context, completedOnly bool) (int64, error)
	// RevenueBetween sums sale totals with sale_date in [start, end)
	RevenueBetween(ctx context.Context, start, end time.Time, completedOnly bool) (int64, error)
	// ReceivableTotal sums totals of sales whose payment is still pending
	ReceivableTotal(ctx context.Context) (int64, error)
	CountSales(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	// CountLowStock counts active products at or below their reorder level
	CountLowStock(ctx context.Context) (int64, error)
	// InventoryValuation sums stock_quantity * cost_price over active products
	InventoryValuation(ctx context.Context) (int64, error)
	TotalExpenses(ctx context.Context) (int64, error)
	// ExpensesBetween sums expense amounts with expense_date in [start, end)
	ExpensesBetween(ctx context.Context, start, end time.Time) (int64, error)
	// ExpensesByCategory sums positive expense amounts grouped by category
	ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
	// CashBalance sums balances of accounts flagged type=cash
	CashBalance(ctx context.Context) (int64, error)
}
