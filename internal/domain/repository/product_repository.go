package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// SetStock overwrites a product's stock quantity (explicit stock-take)
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
	// AdjustStock applies a signed delta to a product's stock quantity with a
	// single UPDATE. No clamping is performed; a delta that would drive stock
	// negative is applied as-is. Returns false when no row matched the id.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
