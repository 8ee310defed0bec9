package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/sangkips/shopledger-api/pkg/apperror"
	"github.com/sangkips/shopledger-api/pkg/pagination"
)

// ProductService handles catalog operations. Stock is only ever written here
// through the explicit stock-set path; all sale-driven movement goes through
// the stock adjuster.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	SKU           string
	StockQuantity int
	ReorderLevel  int
	CostPrice     float64
	SellingPrice  float64
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.SKU == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "sku", Message: "sku is required"})
	}
	if input.CostPrice < 0 || input.SellingPrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "prices", Message: "prices must be non-negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this SKU already exists")
	}

	product := &entity.Product{
		Name:          input.Name,
		SKU:           input.SKU,
		StockQuantity: input.StockQuantity,
		ReorderLevel:  input.ReorderLevel,
		Active:        true,
	}
	product.SetCostPriceFromDecimal(input.CostPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns active products at or below their reorder level
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// SetStock overwrites a product's stock quantity (stock-take correction)
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "stock_quantity", Message: "stock quantity must be non-negative"},
		})
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.SetStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	product.StockQuantity = quantity
	return product, nil
}

// DeleteProduct soft-deletes a product. Sale items keep referencing it; any
// later stock adjustment against it is skipped by the adjuster.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
