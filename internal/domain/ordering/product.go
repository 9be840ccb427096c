package ordering

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. The category link is optional; reports
// render a placeholder for uncategorized products.
type Product struct {
	shared.BaseEntity
	Name       string          `gorm:"type:varchar(200);not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Category   *Category       `gorm:"foreignKey:CategoryID"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, categoryID *uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product price cannot be negative")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
	}, nil
}

// CategoryName returns the category name, or empty when uncategorized
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
