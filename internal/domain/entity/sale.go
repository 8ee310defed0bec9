package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one point-of-sale transaction. Monetary fields hold
// total_amount = subtotal + tax_amount - discount_amount.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber    string             `gorm:"size:100;unique;not null" json:"order_number"`
	SubTotal       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod  enum.PaymentMethod `gorm:"size:50" json:"payment_method"`
	Status         enum.SaleStatus    `gorm:"default:0" json:"status"`
	PaymentStatus  enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	SaleDate       time.Time          `gorm:"not null;index" json:"sale_date"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses.
// The display status is derived on every read and never persisted.
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal       float64            `json:"subtotal"`
		TaxAmount      float64            `json:"tax_amount"`
		DiscountAmount float64            `json:"discount_amount"`
		TotalAmount    float64            `json:"total_amount"`
		DisplayStatus  enum.DisplayStatus `json:"display_status"`
	}{
		Alias:          Alias(s),
		SubTotal:       float64(s.SubTotal) / 100,
		TaxAmount:      float64(s.TaxAmount) / 100,
		DiscountAmount: float64(s.DiscountAmount) / 100,
		TotalAmount:    float64(s.TotalAmount) / 100,
		DisplayStatus:  enum.ResolveDisplayStatus(s.Status, s.PaymentStatus),
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total amount as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.TotalAmount) / 100
}

// SaleItem represents a line item in a sale. Items are exclusively owned by
// their sale and never exist independent of one.
type SaleItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}{
		Alias:      Alias(si),
		UnitPrice:  float64(si.UnitPrice) / 100,
		TotalPrice: float64(si.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
