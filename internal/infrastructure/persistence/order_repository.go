package persistence

import (
	"context"

	"github.com/orderdesk/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// FindByDateRange returns orders whose order date falls inside the range,
// both bounds inclusive, fully preloaded and sorted by order date then
// order number. An inverted range yields no rows without touching the
// database.
func (r *GormOrderRepository) FindByDateRange(ctx context.Context, dateRange ordering.DateRange) ([]ordering.Order, error) {
	if dateRange.IsEmpty() {
		return []ordering.Order{}, nil
	}

	query := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.created_at ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Category")

	if dateRange.Start != nil {
		query = query.Where("order_date >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where("order_date <= ?", *dateRange.End)
	}

	var orders []ordering.Order
	if err := query.Order("order_date ASC, order_no ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}
