package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents a staff member on the payroll
type Employee struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Position  string         `gorm:"size:100" json:"position"`
	Salary    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Active    bool           `gorm:"default:true" json:"active"`
	HiredAt   time.Time      `json:"hired_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Employee) MarshalJSON() ([]byte, error) {
	type Alias Employee
	return json.Marshal(&struct {
		Alias
		Salary float64 `json:"salary"`
	}{
		Alias:  Alias(e),
		Salary: float64(e.Salary) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}

// Expense represents a recorded business expense
type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Category    string         `gorm:"size:100;not null;index" json:"category"`
	Description string         `gorm:"size:255" json:"description"`
	Amount      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ExpenseDate time.Time      `gorm:"not null;index" json:"expense_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// AccountTypeCash marks accounts whose balances roll up into the cash figure
const AccountTypeCash = "cash"

// Account represents a money account (till, bank, mobile wallet)
type Account struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Type      string         `gorm:"size:50;not null;index" json:"type"`
	Balance   int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (a Account) MarshalJSON() ([]byte, error) {
	type Alias Account
	return json.Marshal(&struct {
		Alias
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(a),
		Balance: float64(a.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
