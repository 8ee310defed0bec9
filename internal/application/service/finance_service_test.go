package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/sangkips/shopledger-api/pkg/apperror"
	"github.com/sangkips/shopledger-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExpenseRepository implements repository.ExpenseRepository for testing
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) List(ctx context.Context, params *repository.ExpenseFilterParams) ([]entity.Expense, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Expense), args.Get(1).(int64), args.Error(2)
}

// MockEmployeeRepository implements repository.EmployeeRepository for testing
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Employee, int64, error) {
	args := m.Called(ctx, params, activeOnly)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Employee), args.Get(1).(int64), args.Error(2)
}

// MockAccountRepository implements repository.AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Account), args.Error(1)
}

func newTestFinanceService() (*FinanceService, *MockExpenseRepository, *MockEmployeeRepository, *MockAccountRepository) {
	expenseRepo := new(MockExpenseRepository)
	employeeRepo := new(MockEmployeeRepository)
	accountRepo := new(MockAccountRepository)
	return NewFinanceService(expenseRepo, employeeRepo, accountRepo), expenseRepo, employeeRepo, accountRepo
}

func TestCreateExpense(t *testing.T) {
	t.Run("records expense in cents", func(t *testing.T) {
		svc, expenseRepo, _, _ := newTestFinanceService()

		var created *entity.Expense
		expenseRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Expense")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Expense)
			}).Return(nil)

		expense, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{
			Category: "Rent",
			Amount:   500.00,
		})

		require.NoError(t, err)
		require.NotNil(t, expense)
		assert.Equal(t, int64(50_000), created.Amount)
		assert.False(t, created.ExpenseDate.IsZero())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, expenseRepo, _, _ := newTestFinanceService()

		_, err := svc.CreateExpense(context.Background(), &CreateExpenseInput{
			Category: "Rent",
			Amount:   0,
		})

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
		expenseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDeleteExpense_NotFound(t *testing.T) {
	svc, expenseRepo, _, _ := newTestFinanceService()

	expenseID := uuid.New()
	expenseRepo.On("GetByID", mock.Anything, expenseID).Return(nil, nil)

	err := svc.DeleteExpense(context.Background(), expenseID)

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

func TestSetEmployeeActive(t *testing.T) {
	t.Run("deactivates employee", func(t *testing.T) {
		svc, _, employeeRepo, _ := newTestFinanceService()

		employeeID := uuid.New()
		employeeRepo.On("GetByID", mock.Anything, employeeID).
			Return(&entity.Employee{ID: employeeID, Active: true}, nil)
		employeeRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Employee")).Return(nil)

		employee, err := svc.SetEmployeeActive(context.Background(), employeeID, false)

		require.NoError(t, err)
		assert.False(t, employee.Active)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, employeeRepo, _ := newTestFinanceService()

		employeeID := uuid.New()
		employeeRepo.On("GetByID", mock.Anything, employeeID).Return(nil, nil)

		_, err := svc.SetEmployeeActive(context.Background(), employeeID, false)

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestSetAccountBalance(t *testing.T) {
	svc, _, _, accountRepo := newTestFinanceService()

	accountID := uuid.New()
	accountRepo.On("GetByID", mock.Anything, accountID).
		Return(&entity.Account{ID: accountID, Type: entity.AccountTypeCash, Balance: 10_000}, nil)
	accountRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)

	account, err := svc.SetAccountBalance(context.Background(), accountID, 250.75)

	require.NoError(t, err)
	assert.Equal(t, int64(25_075), account.Balance)
}
