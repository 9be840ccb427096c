package ordering

import (
	"strings"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Customer is the buyer on an order. State is optional; reports render
// a placeholder when it is blank.
type Customer struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);not null;uniqueIndex"`
	State string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, email, state string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email is invalid")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		State:      strings.TrimSpace(state),
	}, nil
}
