package database

import (
	"fmt"
	"log"

	"github.com/sangkips/shopledger-api/internal/config"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	domainRepo "github.com/sangkips/shopledger-api/internal/domain/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Product{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleItem{},

		// Finance entities
		&entity.Employee{},
		&entity.Expense{},
		&entity.Account{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// ResolveCapabilities probes the schema once at startup for the optional
// tables and columns the metrics aggregator depends on. Queries degrade to
// defaults when a source is absent instead of failing per call.
func ResolveCapabilities(db *gorm.DB) domainRepo.DataSourceCapabilities {
	m := db.Migrator()
	caps := domainRepo.DataSourceCapabilities{
		HasSaleStatus: m.HasTable(&entity.Sale{}) && m.HasColumn(&entity.Sale{}, "status"),
		HasExpenses:   m.HasTable(&entity.Expense{}),
		HasEmployees:  m.HasTable(&entity.Employee{}),
		HasAccounts:   m.HasTable(&entity.Account{}),
	}

	log.Printf("Resolved data source capabilities: sale_status=%v expenses=%v employees=%v accounts=%v",
		caps.HasSaleStatus, caps.HasExpenses, caps.HasEmployees, caps.HasAccounts)
	return caps
}
