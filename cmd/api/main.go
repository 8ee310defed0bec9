package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopledger-api/internal/application/service"
	"github.com/sangkips/shopledger-api/internal/config"
	"github.com/sangkips/shopledger-api/internal/infrastructure/database"
	"github.com/sangkips/shopledger-api/internal/infrastructure/repository"
	"github.com/sangkips/shopledger-api/internal/presentation/http/handler"
	"github.com/sangkips/shopledger-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Probe optional data sources once at startup
	caps := database.ResolveCapabilities(db)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)
	txScope := repository.NewTransactionScope(db)

	// Initialize services
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(txScope, saleRepo, productRepo)
	financeService := service.NewFinanceService(expenseRepo, employeeRepo, accountRepo)
	metricsService := service.NewMetricsService(metricsRepo, caps, service.SystemClock())

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(saleService),
		Dashboard: handler.NewDashboardHandler(metricsService),
		Finance:   handler.NewFinanceHandler(financeService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
