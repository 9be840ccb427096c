package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order is the aggregate root for a customer order. TotalAmount is kept
// equal to the sum of item subtotals; reporting recomputes the sum from
// items rather than trusting the stored column.
type Order struct {
	shared.BaseEntity
	OrderNo     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Customer    Customer        `gorm:"foreignKey:CustomerID"`
	OrderDate   time.Time       `gorm:"type:date;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line on an order. The subtotal is derived, never
// stored.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns quantity x unit price as an exact decimal
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder creates an order with no items
func NewOrder(orderNo string, customerID uuid.UUID, orderDate time.Time) (*Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order requires a customer")
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ORDER_DATE", "Order date is required")
	}
	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNo:     orderNo,
		CustomerID:  customerID,
		OrderDate:   truncateToDate(orderDate),
		TotalAmount: decimal.Zero,
	}, nil
}

// AddItem appends an item and keeps the stored total in sync
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Order item requires a product")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Order item unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}
	o.Items = append(o.Items, item)
	o.TotalAmount = o.ItemsTotal()
	o.UpdatedAt = time.Now()
	return nil
}

// ItemsTotal returns the sum of item subtotals
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
