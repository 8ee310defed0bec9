package repository

import "context"

// TransactionScope runs a function inside one database transaction.
// If the function returns an error the transaction is rolled back; otherwise
// it is committed. Every sale lifecycle operation executes through a scope so
// that no sale or stock mutation is ever partially visible.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}

// TxRepositories provides repositories bound to the current transaction.
// All repositories returned share the same underlying database transaction.
type TxRepositories interface {
	Sales() SaleRepository
	SaleItems() SaleItemRepository
	Products() ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are fakes.
type NoOpTransactionScope struct {
	SaleRepo     SaleRepository
	SaleItemRepo SaleItemRepository
	ProductRepo  ProductRepository
}

// Execute runs fn directly against the configured repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TxRepositories) error) error {
	return fn(s)
}

// Sales returns the configured sale repository.
func (s *NoOpTransactionScope) Sales() SaleRepository { return s.SaleRepo }

// SaleItems returns the configured sale item repository.
func (s *NoOpTransactionScope) SaleItems() SaleItemRepository { return s.SaleItemRepo }

// Products returns the configured product repository.
func (s *NoOpTransactionScope) Products() ProductRepository { return s.ProductRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TxRepositories = (*NoOpTransactionScope)(nil)
