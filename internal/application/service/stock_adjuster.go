package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
)

// AdjustOutcome reports what happened to a stock adjustment
type AdjustOutcome int

const (
	// StockAdjusted means the delta was applied to the product's stock
	StockAdjusted AdjustOutcome = iota
	// AdjustSkippedMissing means the product no longer exists; no stock was
	// touched. Callers decide whether to treat this as a failure.
	AdjustSkippedMissing
)

// StockAdjuster is the only component allowed to mutate stock quantities.
// It applies signed deltas (positive = restock, negative = consumption)
// through a single UPDATE statement and never clamps the result to zero.
// When given a transaction-bound repository it participates in the caller's
// ambient transaction and performs no independent commit.
type StockAdjuster struct {
	products repository.ProductRepository
}

// NewStockAdjuster creates a stock adjuster over the given product repository
func NewStockAdjuster(products repository.ProductRepository) *StockAdjuster {
	return &StockAdjuster{products: products}
}

// Adjust applies delta to the product's stock quantity
func (a *StockAdjuster) Adjust(ctx context.Context, productID uuid.UUID, delta int) (AdjustOutcome, error) {
	if delta == 0 {
		return StockAdjusted, nil
	}

	found, err := a.products.AdjustStock(ctx, productID, delta)
	if err != nil {
		return StockAdjusted, err
	}
	if !found {
		return AdjustSkippedMissing, nil
	}
	return StockAdjusted, nil
}
