package ordering

import "context"

// OrderRepository provides access to persisted orders
type OrderRepository interface {
	// FindByDateRange returns orders whose order date falls inside the
	// range, fully preloaded (customer, items, products, categories) and
	// sorted by order date then order number for deterministic output
	FindByDateRange(ctx context.Context, r DateRange) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error
}
