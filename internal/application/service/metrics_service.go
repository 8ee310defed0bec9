package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/shopledger-api/internal/domain/repository"
)

// Clock supplies the current time. Injected so trend windows are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now
func SystemClock() Clock { return systemClock{} }

// DataSource tags a figure with where it came from, so a UI can distinguish
// "no data" from an estimate.
type DataSource string

const (
	// DataSourceActual means the figure was computed from recorded data
	DataSourceActual DataSource = "actual"
	// DataSourceEstimated means the figure was synthesized from fallback ratios
	DataSourceEstimated DataSource = "estimated"
	// DataSourceAbsent means the backing table or column does not exist and
	// the figure defaulted to zero
	DataSourceAbsent DataSource = "absent"
)

// Estimation ratios used when no actual expense records exist. Cost of goods
// and operational/processing costs scale with revenue; staff cost is a fixed
// amount per active employee.
const (
	estimatedCOGSRate       = 0.65
	estimatedOperationsRate = 0.18
	estimatedProcessingRate = 0.029
	estimatedEmployeeCost   = int64(3_500_000) // cents per active employee
)

// Names of the synthesized categories. Any actual expense record replaces
// all of them at once; estimates and actuals are never merged.
const (
	categoryCOGS       = "Cost of Goods Sold"
	categoryOperations = "Operational Costs"
	categoryProcessing = "Payment Processing"
	categoryEmployees  = "Employee Costs"
)

// SnapshotMetrics is a point-in-time view of the business, recomputed from
// the ledger on every call.
type SnapshotMetrics struct {
	TotalRevenue       float64    `json:"total_revenue"`
	TotalExpenses      float64    `json:"total_expenses"`
	NetProfit          float64    `json:"net_profit"`
	ProfitMargin       float64    `json:"profit_margin"`
	MonthlyRevenue     float64    `json:"monthly_revenue"`
	RevenueGrowth      float64    `json:"revenue_growth"`
	SaleCount          int64      `json:"sale_count"`
	ProductCount       int64      `json:"product_count"`
	EmployeeCount      int64      `json:"employee_count"`
	AccountsReceivable float64    `json:"accounts_receivable"`
	LowStockCount      int64      `json:"low_stock_count"`
	InventoryValuation float64    `json:"inventory_valuation"`
	CashBalance        float64    `json:"cash_balance"`
	ExpenseSource      DataSource `json:"expense_source"`
	EmployeeSource     DataSource `json:"employee_source"`
	CashSource         DataSource `json:"cash_source"`
}

// TrendPoint is one calendar bucket in a trend series
type TrendPoint struct {
	Period string  `json:"period"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	// ProfitEstimated is true when no expense source exists and profit
	// degraded to the raw sales amount
	ProfitEstimated bool `json:"profit_estimated"`
}

// ExpenseCategoryBreakdown is one slice of the expense breakdown
type ExpenseCategoryBreakdown struct {
	Category string     `json:"category"`
	Amount   float64    `json:"amount"`
	Source   DataSource `json:"source"`
}

// MetricsService computes derived business indicators from the ledger.
// It is read-only, holds no cache and never fails on an absent optional
// data source.
type MetricsService struct {
	metricsRepo repository.MetricsRepository
	caps        repository.DataSourceCapabilities
	clock       Clock
}

// NewMetricsService creates a new metrics service. A nil clock defaults to
// the system clock.
func NewMetricsService(metricsRepo repository.MetricsRepository, caps repository.DataSourceCapabilities, clock Clock) *MetricsService {
	if clock == nil {
		clock = SystemClock()
	}
	return &MetricsService{
		metricsRepo: metricsRepo,
		caps:        caps,
		clock:       clock,
	}
}

// GetSnapshot returns the current snapshot metrics
func (s *MetricsService) GetSnapshot(ctx context.Context) (*SnapshotMetrics, error) {
	snapshot := &SnapshotMetrics{
		ExpenseSource:  DataSourceAbsent,
		EmployeeSource: DataSourceAbsent,
		CashSource:     DataSourceAbsent,
	}

	revenue, err := s.metricsRepo.TotalRevenue(ctx, s.caps.HasSaleStatus)
	if err != nil {
		return nil, err
	}

	var expenses int64
	if s.caps.HasExpenses {
		expenses, err = s.metricsRepo.TotalExpenses(ctx)
		if err != nil {
			return nil, err
		}
		snapshot.ExpenseSource = DataSourceActual
	}

	profit := revenue - expenses
	snapshot.TotalRevenue = float64(revenue) / 100
	snapshot.TotalExpenses = float64(expenses) / 100
	snapshot.NetProfit = float64(profit) / 100
	if revenue != 0 {
		snapshot.ProfitMargin = float64(profit) / float64(revenue) * 100
	}

	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	monthly, err := s.metricsRepo.RevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0), s.caps.HasSaleStatus)
	if err != nil {
		return nil, err
	}
	previous, err := s.metricsRepo.RevenueBetween(ctx, prevMonthStart, monthStart, s.caps.HasSaleStatus)
	if err != nil {
		return nil, err
	}
	snapshot.MonthlyRevenue = float64(monthly) / 100
	switch {
	case previous != 0:
		snapshot.RevenueGrowth = float64(monthly-previous) / float64(previous) * 100
	case monthly > 0:
		snapshot.RevenueGrowth = 100
	}

	if snapshot.SaleCount, err = s.metricsRepo.CountSales(ctx); err != nil {
		return nil, err
	}
	if snapshot.ProductCount, err = s.metricsRepo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if s.caps.HasEmployees {
		if snapshot.EmployeeCount, err = s.metricsRepo.CountActiveEmployees(ctx); err != nil {
			return nil, err
		}
		snapshot.EmployeeSource = DataSourceActual
	}

	receivable, err := s.metricsRepo.ReceivableTotal(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.AccountsReceivable = float64(receivable) / 100

	if snapshot.LowStockCount, err = s.metricsRepo.CountLowStock(ctx); err != nil {
		return nil, err
	}

	valuation, err := s.metricsRepo.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.InventoryValuation = float64(valuation) / 100

	if s.caps.HasAccounts {
		cash, err := s.metricsRepo.CashBalance(ctx)
		if err != nil {
			return nil, err
		}
		snapshot.CashBalance = float64(cash) / 100
		snapshot.CashSource = DataSourceActual
	}

	return snapshot, nil
}

// GetMonthlyTrend returns one bucket per calendar month for the trailing
// window, oldest first. Months with no sales produce zero-filled buckets, so
// the series always has exactly the requested length.
func (s *MetricsService) GetMonthlyTrend(ctx context.Context, months int) ([]TrendPoint, error) {
	if months < 1 {
		months = 6
	}

	now := s.clock.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	points := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := currentMonth.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		point, err := s.trendPoint(ctx, start, end, start.Format("Jan 2006"))
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

// GetDailyTrend returns one bucket per day for the trailing window, oldest
// first, zero-filled for days with no sales.
func (s *MetricsService) GetDailyTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days < 1 {
		days = 7
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		point, err := s.trendPoint(ctx, start, end, start.Format("Jan 02"))
		if err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return points, nil
}

func (s *MetricsService) trendPoint(ctx context.Context, start, end time.Time, label string) (TrendPoint, error) {
	sales, err := s.metricsRepo.RevenueBetween(ctx, start, end, s.caps.HasSaleStatus)
	if err != nil {
		return TrendPoint{}, err
	}

	// Profit degrades to the raw sales amount when no expense source exists
	profit := sales
	estimated := true
	if s.caps.HasExpenses {
		expenses, err := s.metricsRepo.ExpensesBetween(ctx, start, end)
		if err != nil {
			return TrendPoint{}, err
		}
		profit = sales - expenses
		estimated = false
	}

	return TrendPoint{
		Period:          label,
		Sales:           float64(sales) / 100,
		Profit:          float64(profit) / 100,
		ProfitEstimated: estimated,
	}, nil
}

// GetExpenseBreakdown returns per-category expense totals, sorted descending
// by amount. When at least one actual expense record with a positive amount
// exists, the actual categories fully replace the estimated ones; otherwise
// an estimated breakdown is synthesized from revenue and employee count.
func (s *MetricsService) GetExpenseBreakdown(ctx context.Context) ([]ExpenseCategoryBreakdown, error) {
	if s.caps.HasExpenses {
		actual, err := s.metricsRepo.ExpensesByCategory(ctx)
		if err != nil {
			return nil, err
		}
		if len(actual) > 0 {
			breakdown := make([]ExpenseCategoryBreakdown, 0, len(actual))
			for _, c := range actual {
				breakdown = append(breakdown, ExpenseCategoryBreakdown{
					Category: c.Category,
					Amount:   float64(c.Total) / 100,
					Source:   DataSourceActual,
				})
			}
			sortBreakdownDesc(breakdown)
			return breakdown, nil
		}
	}

	return s.estimateBreakdown(ctx)
}

func (s *MetricsService) estimateBreakdown(ctx context.Context) ([]ExpenseCategoryBreakdown, error) {
	revenue, err := s.metricsRepo.TotalRevenue(ctx, s.caps.HasSaleStatus)
	if err != nil {
		return nil, err
	}

	var employees int64
	if s.caps.HasEmployees {
		if employees, err = s.metricsRepo.CountActiveEmployees(ctx); err != nil {
			return nil, err
		}
	}

	estimates := map[string]int64{
		categoryCOGS:       int64(float64(revenue) * estimatedCOGSRate),
		categoryOperations: int64(float64(revenue) * estimatedOperationsRate),
		categoryProcessing: int64(float64(revenue) * estimatedProcessingRate),
		categoryEmployees:  estimatedEmployeeCost * employees,
	}

	breakdown := make([]ExpenseCategoryBreakdown, 0, len(estimates))
	for category, amount := range estimates {
		if amount <= 0 {
			continue
		}
		breakdown = append(breakdown, ExpenseCategoryBreakdown{
			Category: category,
			Amount:   float64(amount) / 100,
			Source:   DataSourceEstimated,
		})
	}
	sortBreakdownDesc(breakdown)
	return breakdown, nil
}

func sortBreakdownDesc(breakdown []ExpenseCategoryBreakdown) {
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount == breakdown[j].Amount {
			return breakdown[i].Category < breakdown[j].Category
		}
		return breakdown[i].Amount > breakdown[j].Amount
	})
}
