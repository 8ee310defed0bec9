package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/application/service"
	"github.com/sangkips/shopledger-api/internal/domain/repository"
	"github.com/sangkips/shopledger-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopledger-api/pkg/pagination"
)

// FinanceHandler handles expense, employee and account HTTP requests
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new finance handler
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// ListExpenses handles listing expenses
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Category: c.Query("category"),
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.financeService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// CreateExpense handles recording an expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req struct {
		Category    string  `json:"category" binding:"required"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount" binding:"required"`
		ExpenseDate string  `json:"expense_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.ExpenseDate != "" {
		expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			response.BadRequest(c, "Invalid expense date, expected YYYY-MM-DD")
			return
		}
		input.ExpenseDate = expenseDate
	}

	expense, err := h.financeService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// DeleteExpense handles deleting an expense
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.financeService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense deleted successfully", nil)
}

// ListEmployees handles listing employees
func (h *FinanceHandler) ListEmployees(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	activeOnly := c.Query("active") == "true"

	result, err := h.financeService.ListEmployees(c.Request.Context(), params, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// CreateEmployee handles adding an employee
func (h *FinanceHandler) CreateEmployee(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Position string  `json:"position"`
		Salary   float64 `json:"salary"`
		HiredAt  string  `json:"hired_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateEmployeeInput{
		Name:     req.Name,
		Position: req.Position,
		Salary:   req.Salary,
	}
	if req.HiredAt != "" {
		hiredAt, err := time.Parse("2006-01-02", req.HiredAt)
		if err != nil {
			response.BadRequest(c, "Invalid hire date, expected YYYY-MM-DD")
			return
		}
		input.HiredAt = hiredAt
	}

	employee, err := h.financeService.CreateEmployee(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// SetEmployeeActive handles activating or deactivating an employee
func (h *FinanceHandler) SetEmployeeActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.financeService.SetEmployeeActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// ListAccounts handles listing money accounts
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.financeService.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Accounts retrieved successfully", accounts)
}

// CreateAccount handles registering a money account
func (h *FinanceHandler) CreateAccount(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		Type    string  `json:"type" binding:"required"`
		Balance float64 `json:"balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.financeService.CreateAccount(c.Request.Context(), &service.CreateAccountInput{
		Name:    req.Name,
		Type:    req.Type,
		Balance: req.Balance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Account created successfully", account)
}

// SetAccountBalance handles reconciling an account balance
func (h *FinanceHandler) SetAccountBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID")
		return
	}

	var req struct {
		Balance float64 `json:"balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.financeService.SetAccountBalance(c.Request.Context(), id, req.Balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Account updated successfully", account)
}
