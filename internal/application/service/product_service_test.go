package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	t.Run("creates product with prices in cents", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		productRepo.On("GetBySKU", mock.Anything, "SKU-001").Return(nil, nil)

		var created *entity.Product
		productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Product)
			}).Return(nil)

		product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
			Name:          "Espresso Beans",
			SKU:           "SKU-001",
			StockQuantity: 20,
			ReorderLevel:  5,
			CostPrice:     8.50,
			SellingPrice:  14.00,
		})

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, int64(850), created.CostPrice)
		assert.Equal(t, int64(1400), created.SellingPrice)
		assert.True(t, created.Active)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		productRepo.On("GetBySKU", mock.Anything, "SKU-001").
			Return(&entity.Product{ID: uuid.New(), SKU: "SKU-001"}, nil)

		_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
			Name: "Espresso Beans",
			SKU:  "SKU-001",
		})

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 409, appErr.Code)
		productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		_, err := svc.CreateProduct(context.Background(), &CreateProductInput{})

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
		assert.Len(t, appErr.Errors, 2)
	})
}

func TestSetStock(t *testing.T) {
	t.Run("overwrites stock quantity", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		productID := uuid.New()
		productRepo.On("GetByID", mock.Anything, productID).
			Return(&entity.Product{ID: productID, StockQuantity: 3}, nil)
		productRepo.On("SetStock", mock.Anything, productID, 40).Return(nil)

		product, err := svc.SetStock(context.Background(), productID, 40)

		require.NoError(t, err)
		assert.Equal(t, 40, product.StockQuantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		_, err := svc.SetStock(context.Background(), uuid.New(), -1)

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
		productRepo.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		svc := NewProductService(productRepo)

		productID := uuid.New()
		productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil)

		_, err := svc.SetStock(context.Background(), productID, 10)

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestDeleteProduct_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo)

	productID := uuid.New()
	productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil)

	err := svc.DeleteProduct(context.Background(), productID)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}
