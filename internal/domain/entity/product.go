package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a product in the catalog. StockQuantity is only ever
// mutated through the stock adjuster or an explicit stock-set operation.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	SKU           string         `gorm:"size:100;unique;not null" json:"sku"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ReorderLevel  int            `gorm:"default:0" json:"reorder_level"`
	CostPrice     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	SellingPrice  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		CostPrice    float64 `json:"cost_price"`
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(p),
		CostPrice:    float64(p.CostPrice) / 100,
		SellingPrice: float64(p.SellingPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product is at or below its reorder level
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}

// GetCostPriceDecimal returns the cost price as a decimal (for display)
func (p *Product) GetCostPriceDecimal() float64 {
	return float64(p.CostPrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetCostPriceFromDecimal sets the cost price from a decimal value
func (p *Product) SetCostPriceFromDecimal(price float64) {
	p.CostPrice = int64(price * 100)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price * 100)
}
