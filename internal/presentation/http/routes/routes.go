package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopledger-api/internal/config"
	"github.com/sangkips/shopledger-api/internal/presentation/http/handler"
	"github.com/sangkips/shopledger-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product   *handler.ProductHandler
	Sale      *handler.SaleHandler
	Dashboard *handler.DashboardHandler
	Finance   *handler.FinanceHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
			BurstSize:         cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerProductRoutes(v1, h)
		registerSaleRoutes(v1, h)
		registerDashboardRoutes(v1, h)
		registerFinanceRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id/stock", h.Product.SetStock)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sales := v1.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerDashboardRoutes(v1 *gin.RouterGroup, h *Handlers) {
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/metrics", h.Dashboard.Snapshot)
		dashboard.GET("/trends/monthly", h.Dashboard.MonthlyTrend)
		dashboard.GET("/trends/daily", h.Dashboard.DailyTrend)
		dashboard.GET("/expenses/breakdown", h.Dashboard.ExpenseBreakdown)
	}
}

func registerFinanceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	expenses := v1.Group("/expenses")
	{
		expenses.GET("", h.Finance.ListExpenses)
		expenses.POST("", h.Finance.CreateExpense)
		expenses.DELETE("/:id", h.Finance.DeleteExpense)
	}

	employees := v1.Group("/employees")
	{
		employees.GET("", h.Finance.ListEmployees)
		employees.POST("", h.Finance.CreateEmployee)
		employees.PUT("/:id/active", h.Finance.SetEmployeeActive)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.GET("", h.Finance.ListAccounts)
		accounts.POST("", h.Finance.CreateAccount)
		accounts.PUT("/:id/balance", h.Finance.SetAccountBalance)
	}
}
