package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMetricsRepository implements repository.MetricsRepository for testing
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) TotalRevenue(ctx context.Context, completedOnly bool) (int64, error) {
	args := m.Called(ctx, completedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) RevenueBetween(ctx context.Context, start, end time.Time, completedOnly bool) (int64, error) {
	args := m.Called(ctx, start, end, completedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) ReceivableTotal(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountSales(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CountLowStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) InventoryValuation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) TotalExpenses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) ExpensesBetween(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) ExpensesByCategory(ctx context.Context) ([]repository.CategoryTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryTotal), args.Error(1)
}

func (m *MockMetricsRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMetricsRepository) CashBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// fixedClock pins Now to a known instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func testClock() Clock {
	return fixedClock{now: time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)}
}

func TestGetSnapshot_ComputesProfitAndMargin(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.FullCapabilities()
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("TotalRevenue", mock.Anything, true).Return(int64(200_000), nil)
	repo.On("TotalExpenses", mock.Anything).Return(int64(50_000), nil)
	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(0), nil)
	repo.On("CountSales", mock.Anything).Return(int64(12), nil)
	repo.On("CountProducts", mock.Anything).Return(int64(30), nil)
	repo.On("CountActiveEmployees", mock.Anything).Return(int64(2), nil)
	repo.On("ReceivableTotal", mock.Anything).Return(int64(10_000), nil)
	repo.On("CountLowStock", mock.Anything).Return(int64(4), nil)
	repo.On("InventoryValuation", mock.Anything).Return(int64(75_000), nil)
	repo.On("CashBalance", mock.Anything).Return(int64(33_000), nil)

	snapshot, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2000.0, snapshot.TotalRevenue)
	assert.Equal(t, 500.0, snapshot.TotalExpenses)
	assert.Equal(t, 1500.0, snapshot.NetProfit)
	assert.Equal(t, 75.0, snapshot.ProfitMargin)
	assert.Equal(t, int64(12), snapshot.SaleCount)
	assert.Equal(t, int64(2), snapshot.EmployeeCount)
	assert.Equal(t, 100.0, snapshot.AccountsReceivable)
	assert.Equal(t, int64(4), snapshot.LowStockCount)
	assert.Equal(t, 750.0, snapshot.InventoryValuation)
	assert.Equal(t, 330.0, snapshot.CashBalance)
	assert.Equal(t, DataSourceActual, snapshot.ExpenseSource)
	assert.Equal(t, DataSourceActual, snapshot.EmployeeSource)
	assert.Equal(t, DataSourceActual, snapshot.CashSource)
}

func TestGetSnapshot_ZeroRevenueMeansZeroMargin(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("TotalRevenue", mock.Anything, true).Return(int64(0), nil)
	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(0), nil)
	repo.On("CountSales", mock.Anything).Return(int64(0), nil)
	repo.On("CountProducts", mock.Anything).Return(int64(0), nil)
	repo.On("ReceivableTotal", mock.Anything).Return(int64(0), nil)
	repo.On("CountLowStock", mock.Anything).Return(int64(0), nil)
	repo.On("InventoryValuation", mock.Anything).Return(int64(0), nil)

	snapshot, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0.0, snapshot.ProfitMargin)
	assert.Equal(t, 0.0, snapshot.RevenueGrowth)
	// Optional sources never probed when the capability is off
	assert.Equal(t, DataSourceAbsent, snapshot.ExpenseSource)
	assert.Equal(t, DataSourceAbsent, snapshot.EmployeeSource)
	assert.Equal(t, DataSourceAbsent, snapshot.CashSource)
	repo.AssertNotCalled(t, "TotalExpenses", mock.Anything)
	repo.AssertNotCalled(t, "CashBalance", mock.Anything)
}

func TestGetSnapshot_GrowthAgainstPreviousMonth(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	monthStart := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	prevStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	repo.On("TotalRevenue", mock.Anything, true).Return(int64(100_000), nil)
	repo.On("RevenueBetween", mock.Anything, monthStart, monthStart.AddDate(0, 1, 0), true).Return(int64(30_000), nil)
	repo.On("RevenueBetween", mock.Anything, prevStart, monthStart, true).Return(int64(20_000), nil)
	repo.On("CountSales", mock.Anything).Return(int64(1), nil)
	repo.On("CountProducts", mock.Anything).Return(int64(1), nil)
	repo.On("ReceivableTotal", mock.Anything).Return(int64(0), nil)
	repo.On("CountLowStock", mock.Anything).Return(int64(0), nil)
	repo.On("InventoryValuation", mock.Anything).Return(int64(0), nil)

	snapshot, err := svc.GetSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 300.0, snapshot.MonthlyRevenue)
	assert.InDelta(t, 50.0, snapshot.RevenueGrowth, 0.001)
}

func TestGetMonthlyTrend_ZeroFillsEmptyMonths(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(0), nil)

	points, err := svc.GetMonthlyTrend(context.Background(), 6)

	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, "Jan 2024", points[0].Period)
	assert.Equal(t, "Jun 2024", points[5].Period)
	for _, p := range points {
		assert.Equal(t, 0.0, p.Sales)
		assert.Equal(t, 0.0, p.Profit)
		// No expense table in this schema, so profit is only an estimate
		assert.True(t, p.ProfitEstimated)
	}
	repo.AssertNotCalled(t, "ExpensesBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetMonthlyTrend_DefaultsWindow(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(0), nil)

	points, err := svc.GetMonthlyTrend(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, points, 6)
}

func TestGetDailyTrend_SubtractsActualExpenses(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.FullCapabilities()
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(10_000), nil)
	repo.On("ExpensesBetween", mock.Anything, mock.Anything, mock.Anything).Return(int64(4_000), nil)

	points, err := svc.GetDailyTrend(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, "Jun 09", points[0].Period)
	assert.Equal(t, "Jun 15", points[6].Period)
	for _, p := range points {
		assert.Equal(t, 100.0, p.Sales)
		assert.Equal(t, 60.0, p.Profit)
		assert.False(t, p.ProfitEstimated)
	}
}

func TestGetExpenseBreakdown_EstimatesWhenNoRecords(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.FullCapabilities()
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("ExpensesByCategory", mock.Anything).Return([]repository.CategoryTotal{}, nil)
	repo.On("TotalRevenue", mock.Anything, true).Return(int64(100_000), nil)
	repo.On("CountActiveEmployees", mock.Anything).Return(int64(2), nil)

	breakdown, err := svc.GetExpenseBreakdown(context.Background())

	require.NoError(t, err)
	require.Len(t, breakdown, 4)

	byCategory := make(map[string]ExpenseCategoryBreakdown, len(breakdown))
	for _, b := range breakdown {
		byCategory[b.Category] = b
		assert.Equal(t, DataSourceEstimated, b.Source)
	}

	assert.Equal(t, 650.0, byCategory["Cost of Goods Sold"].Amount)
	assert.Equal(t, 180.0, byCategory["Operational Costs"].Amount)
	assert.Equal(t, 29.0, byCategory["Payment Processing"].Amount)
	assert.Equal(t, 70_000.0, byCategory["Employee Costs"].Amount)

	// Sorted by amount, largest first
	assert.Equal(t, "Employee Costs", breakdown[0].Category)
	assert.Equal(t, "Payment Processing", breakdown[3].Category)
}

func TestGetExpenseBreakdown_ActualReplacesEstimates(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.FullCapabilities()
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("ExpensesByCategory", mock.Anything).Return([]repository.CategoryTotal{
		{Category: "Rent", Total: 50_000},
		{Category: "Utilities", Total: 12_000},
	}, nil)

	breakdown, err := svc.GetExpenseBreakdown(context.Background())

	require.NoError(t, err)
	// A single recorded expense suppresses every synthesized category
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Rent", breakdown[0].Category)
	assert.Equal(t, 500.0, breakdown[0].Amount)
	assert.Equal(t, DataSourceActual, breakdown[0].Source)
	assert.Equal(t, "Utilities", breakdown[1].Category)
	repo.AssertNotCalled(t, "TotalRevenue", mock.Anything, mock.Anything)
}

func TestGetExpenseBreakdown_DropsZeroEstimates(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("TotalRevenue", mock.Anything, true).Return(int64(0), nil)

	breakdown, err := svc.GetExpenseBreakdown(context.Background())

	require.NoError(t, err)
	assert.Empty(t, breakdown)
}

func TestGetSnapshot_IsIdempotent(t *testing.T) {
	repo := new(MockMetricsRepository)
	caps := repository.DataSourceCapabilities{HasSaleStatus: true}
	svc := NewMetricsService(repo, caps, testClock())

	repo.On("TotalRevenue", mock.Anything, true).Return(int64(50_000), nil)
	repo.On("RevenueBetween", mock.Anything, mock.Anything, mock.Anything, true).Return(int64(5_000), nil)
	repo.On("CountSales", mock.Anything).Return(int64(3), nil)
	repo.On("CountProducts", mock.Anything).Return(int64(9), nil)
	repo.On("ReceivableTotal", mock.Anything).Return(int64(0), nil)
	repo.On("CountLowStock", mock.Anything).Return(int64(1), nil)
	repo.On("InventoryValuation", mock.Anything).Return(int64(20_000), nil)

	first, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)
	second, err := svc.GetSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
