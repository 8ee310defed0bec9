package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/internal/domain/enum"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/sangkips/shopledger-api/pkg/apperror"
	"github.com/sangkips/shopledger-api/pkg/pagination"
)

// SaleService processes the sale lifecycle. Every create/update/delete runs
// inside one database transaction together with its stock adjustments, so
// the net stock change always matches exactly one lifecycle transition.
type SaleService struct {
	txScope     repository.TransactionScope
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	txScope repository.TransactionScope,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *SaleService {
	return &SaleService{
		txScope:     txScope,
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// SaleItemInput represents a line item in a sale request
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	PaymentMethod  enum.PaymentMethod
	DiscountAmount float64
	TaxAmount      float64
	Items          []SaleItemInput
}

// UpdateSaleInput represents the update sale input. Nil fields are left
// unchanged; Items always replaces the full item set.
type UpdateSaleInput struct {
	Status         *enum.SaleStatus
	PaymentStatus  *enum.PaymentStatus
	PaymentMethod  *enum.PaymentMethod
	DiscountAmount *float64
	TaxAmount      *float64
	Items          []SaleItemInput
}

// CreateSale creates a sale with its items and consumes stock for every item.
// A created sale is presumed immediately fulfilled and paid; there is no open
// cart concept at the point of sale.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if fieldErrs := validateSaleItems(input.Items); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "must be one of cash, card, transfer, digital"},
		})
	}
	if input.DiscountAmount < 0 || input.TaxAmount < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amounts", Message: "tax and discount must be non-negative"},
		})
	}

	items, subTotal, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	taxAmount := int64(input.TaxAmount * 100)
	discountAmount := int64(input.DiscountAmount * 100)

	sale := &entity.Sale{
		OrderNumber:    generateOrderNumber(),
		SubTotal:       subTotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		TotalAmount:    subTotal + taxAmount - discountAmount,
		PaymentMethod:  input.PaymentMethod,
		Status:         enum.SaleStatusCompleted,
		PaymentStatus:  enum.PaymentStatusPaid,
		SaleDate:       time.Now(),
	}

	err = s.txScope.Execute(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Sales().Create(ctx, sale); err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := repos.SaleItems().CreateBatch(ctx, items); err != nil {
			return err
		}

		adjuster := NewStockAdjuster(repos.Products())
		for _, item := range items {
			if err := s.consume(ctx, adjuster, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// UpdateSale replaces a sale's fields and full item set. Stock for every
// existing item is restored before the new items consume stock again, so a
// quantity change from 5 to 3 nets a +2 stock change. The restore-then-apply
// pair is executed even for unchanged items.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if fieldErrs := validateSaleItems(input.Items); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}
	if input.PaymentMethod != nil && !input.PaymentMethod.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_method", Message: "must be one of cash, card, transfer, digital"},
		})
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "must be pending, completed or cancelled"},
		})
	}
	if input.PaymentStatus != nil && !input.PaymentStatus.IsValid() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payment_status", Message: "must be pending, paid or refunded"},
		})
	}

	newItems, subTotal, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	oldItems := sale.Items

	if input.Status != nil {
		sale.Status = *input.Status
	}
	if input.PaymentStatus != nil {
		sale.PaymentStatus = *input.PaymentStatus
	}
	if input.PaymentMethod != nil {
		sale.PaymentMethod = *input.PaymentMethod
	}
	if input.TaxAmount != nil {
		if *input.TaxAmount < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "tax_amount", Message: "must be non-negative"},
			})
		}
		sale.TaxAmount = int64(*input.TaxAmount * 100)
	}
	if input.DiscountAmount != nil {
		if *input.DiscountAmount < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount_amount", Message: "must be non-negative"},
			})
		}
		sale.DiscountAmount = int64(*input.DiscountAmount * 100)
	}
	sale.SubTotal = subTotal
	sale.TotalAmount = subTotal + sale.TaxAmount - sale.DiscountAmount
	sale.Items = nil

	err = s.txScope.Execute(ctx, func(repos repository.TxRepositories) error {
		adjuster := NewStockAdjuster(repos.Products())

		// Restore stock to the pre-sale baseline before anything is replaced
		for _, item := range oldItems {
			if err := s.restore(ctx, adjuster, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.SaleItems().DeleteBySaleID(ctx, sale.ID); err != nil {
			return err
		}
		if err := repos.Sales().Update(ctx, sale); err != nil {
			return err
		}

		for i := range newItems {
			newItems[i].SaleID = sale.ID
		}
		if err := repos.SaleItems().CreateBatch(ctx, newItems); err != nil {
			return err
		}

		for _, item := range newItems {
			if err := s.consume(ctx, adjuster, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, id)
}

// DeleteSale removes a sale and restores stock for every item
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	return s.txScope.Execute(ctx, func(repos repository.TxRepositories) error {
		adjuster := NewStockAdjuster(repos.Products())
		for _, item := range sale.Items {
			if err := s.restore(ctx, adjuster, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.SaleItems().DeleteBySaleID(ctx, sale.ID); err != nil {
			return err
		}
		return repos.Sales().Delete(ctx, sale.ID)
	})
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// buildItems validates product references and converts inputs into sale item
// rows, returning the subtotal in cents.
func (s *SaleService) buildItems(ctx context.Context, inputs []SaleItemInput) ([]entity.SaleItem, int64, error) {
	productIDs := make([]uuid.UUID, len(inputs))
	for i, item := range inputs {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, 0, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subTotal int64
	items := make([]entity.SaleItem, 0, len(inputs))
	for _, input := range inputs {
		if _, exists := productMap[input.ProductID]; !exists {
			return nil, 0, apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: fmt.Sprintf("unknown product %s", input.ProductID)},
			})
		}

		unitPrice := int64(input.UnitPrice * 100)
		totalPrice := unitPrice * int64(input.Quantity)
		subTotal += totalPrice

		items = append(items, entity.SaleItem{
			ProductID:  input.ProductID,
			Quantity:   input.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}

	return items, subTotal, nil
}

// consume depletes stock for a sold item. A product deleted since the sale
// was taken is skipped rather than failing the transaction; the stock effect
// of such items is dropped by policy.
func (s *SaleService) consume(ctx context.Context, adjuster *StockAdjuster, productID uuid.UUID, quantity int) error {
	outcome, err := adjuster.Adjust(ctx, productID, -quantity)
	if err != nil {
		return err
	}
	if outcome == AdjustSkippedMissing {
		log.Printf("stock: skipped consumption of %d for missing product %s", quantity, productID)
	}
	return nil
}

// restore gives stock back for a removed or replaced item, with the same
// missing-product policy as consume.
func (s *SaleService) restore(ctx context.Context, adjuster *StockAdjuster, productID uuid.UUID, quantity int) error {
	outcome, err := adjuster.Adjust(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if outcome == AdjustSkippedMissing {
		log.Printf("stock: skipped restoration of %d for missing product %s", quantity, productID)
	}
	return nil
}

func validateSaleItems(items []SaleItemInput) []apperror.FieldError {
	var fieldErrs []apperror.FieldError
	if len(items) == 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "items", Message: "at least one item is required"})
		return fieldErrs
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].product_id", i), Message: "product reference is required",
			})
		}
		if item.Quantity < 1 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1",
			})
		}
		if item.UnitPrice < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].unit_price", i), Message: "unit price must be non-negative",
			})
		}
	}
	return fieldErrs
}

func generateOrderNumber() string {
	return fmt.Sprintf("SAL-%s", uuid.New().String()[:8])
}
