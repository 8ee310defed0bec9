package repository

import (
	"context"

	domainRepo "github.com/sangkips/shopledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

// gormTransactionScope runs functions inside a single GORM transaction.
// Repositories handed to the function are bound to that transaction, so all
// their writes commit or roll back together.
type gormTransactionScope struct {
	db *gorm.DB
}

// NewTransactionScope creates a transaction scope over the given database
func NewTransactionScope(db *gorm.DB) domainRepo.TransactionScope {
	return &gormTransactionScope{db: db}
}

func (s *gormTransactionScope) Execute(ctx context.Context, fn func(repos domainRepo.TxRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Sales() domainRepo.SaleRepository {
	return NewSaleRepository(r.tx)
}

func (r *txRepositories) SaleItems() domainRepo.SaleItemRepository {
	return NewSaleItemRepository(r.tx)
}

func (r *txRepositories) Products() domainRepo.ProductRepository {
	return NewProductRepository(r.tx)
}
