package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/entity"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/sangkips/shopledger-api/pkg/apperror"
	"github.com/sangkips/shopledger-api/pkg/pagination"
)

// FinanceService manages the optional ledger data: expenses, employees and
// money accounts. Recording any expense flips the dashboard breakdown from
// estimated to actual figures.
type FinanceService struct {
	expenseRepo  repository.ExpenseRepository
	employeeRepo repository.EmployeeRepository
	accountRepo  repository.AccountRepository
}

// NewFinanceService creates a new finance service
func NewFinanceService(
	expenseRepo repository.ExpenseRepository,
	employeeRepo repository.EmployeeRepository,
	accountRepo repository.AccountRepository,
) *FinanceService {
	return &FinanceService{
		expenseRepo:  expenseRepo,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
	}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Category    string
	Description string
	Amount      float64
	ExpenseDate time.Time
}

// CreateExpense records a business expense
func (s *FinanceService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	var fieldErrs []apperror.FieldError
	if input.Category == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "category", Message: "category is required"})
	}
	if input.Amount <= 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "amount must be positive"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense := &entity.Expense{
		Category:    input.Category,
		Description: input.Description,
		Amount:      int64(input.Amount * 100),
		ExpenseDate: expenseDate,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists expenses with filtering
func (s *FinanceService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// DeleteExpense removes a recorded expense
func (s *FinanceService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	Name     string
	Position string
	Salary   float64
	HiredAt  time.Time
}

// CreateEmployee adds a staff member to the payroll
func (s *FinanceService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Salary < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "salary", Message: "salary must be non-negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	hiredAt := input.HiredAt
	if hiredAt.IsZero() {
		hiredAt = time.Now()
	}

	employee := &entity.Employee{
		Name:     input.Name,
		Position: input.Position,
		Salary:   int64(input.Salary * 100),
		Active:   true,
		HiredAt:  hiredAt,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// ListEmployees lists employees, optionally only active ones
func (s *FinanceService) ListEmployees(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, total, err := s.employeeRepo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(employees, pag), nil
}

// SetEmployeeActive marks an employee active or inactive. Inactive employees
// drop out of the head count and the estimated staff cost.
func (s *FinanceService) SetEmployeeActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}

	employee.Active = active
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// CreateAccountInput represents the create account input
type CreateAccountInput struct {
	Name    string
	Type    string
	Balance float64
}

// CreateAccount registers a money account (till, bank, mobile wallet)
func (s *FinanceService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*entity.Account, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Type == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "type", Message: "type is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	account := &entity.Account{
		Name:    input.Name,
		Type:    input.Type,
		Balance: int64(input.Balance * 100),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts lists all money accounts
func (s *FinanceService) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	return s.accountRepo.List(ctx)
}

// SetAccountBalance overwrites an account's balance (reconciliation)
func (s *FinanceService) SetAccountBalance(ctx context.Context, id uuid.UUID, balance float64) (*entity.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}

	account.Balance = int64(balance * 100)
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
