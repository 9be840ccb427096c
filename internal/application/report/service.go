package report

import (
	"context"

	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service provides application-level order reporting operations
type Service struct {
	orders ordering.OrderRepository
	logger *zap.Logger
}

// NewService creates a new report Service
func NewService(orders ordering.OrderRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{orders: orders, logger: logger}
}

// SummaryResponse is the summary block of the on-screen report
type SummaryResponse struct {
	TotalOrders     int           `json:"total_orders"`
	TotalRevenue    string        `json:"total_revenue"`
	AvgOrderValue   string        `json:"avg_order_value"`
	TopProducts     []ProductRank `json:"top_products"`
	TopProductNames string        `json:"top_product_names"`
}

// ReportLineResponse is one flat detail line of the on-screen report.
// Unlike the spreadsheet layout, every line repeats its order fields.
type ReportLineResponse struct {
	OrderNo   string `json:"order_no"`
	OrderDate string `json:"order_date"`
	Customer  string `json:"customer"`
	State     string `json:"state"`
	Category  string `json:"category"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// OrderReportResponse is the paginated on-screen report
type OrderReportResponse struct {
	Summary SummaryResponse      `json:"summary"`
	Items   []ReportLineResponse `json:"items"`
	Total   int64                `json:"-"` // total orders, for pagination meta
}

// GetOrderReport aggregates the orders in the range and returns the
// summary plus the detail lines of one page of orders. The summary
// always covers the whole range, not just the page.
func (s *Service) GetOrderReport(ctx context.Context, r ordering.DateRange, page, pageSize int) (*OrderReportResponse, error) {
	orders, err := s.orders.FindByDateRange(ctx, r)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(orders)

	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(orders) {
		start = len(orders)
	}
	if end > len(orders) {
		end = len(orders)
	}

	items := make([]ReportLineResponse, 0)
	for _, order := range orders[start:end] {
		for _, item := range order.Items {
			items = append(items, ReportLineResponse{
				OrderNo:   order.OrderNo,
				OrderDate: order.OrderDate.Format("2006-01-02"),
				Customer:  order.Customer.Name,
				State:     orDash(order.Customer.State),
				Category:  orDash(item.Product.CategoryName()),
				Product:   item.Product.Name,
				Quantity:  item.Quantity,
				UnitPrice: valueobject.NewMoneyMYR(item.UnitPrice).Format(),
				Subtotal:  valueobject.NewMoneyMYR(item.Subtotal()).Format(),
			})
		}
	}

	s.logger.Debug("Order report built",
		zap.Int("orders", len(orders)),
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
	)

	return &OrderReportResponse{
		Summary: SummaryResponse{
			TotalOrders:     summary.TotalOrders,
			TotalRevenue:    valueobject.NewMoneyMYR(summary.TotalRevenue).Format(),
			AvgOrderValue:   valueobject.NewMoneyMYR(summary.AvgOrderValue).Format(),
			TopProducts:     summary.TopProducts,
			TopProductNames: summary.TopProductNames(),
		},
		Items: items,
		Total: int64(len(orders)),
	}, nil
}

// ExportOrderReport assembles the spreadsheet document for the range
func (s *Service) ExportOrderReport(ctx context.Context, r ordering.DateRange, layout Layout) (Sheet, error) {
	orders, err := s.orders.FindByDateRange(ctx, r)
	if err != nil {
		return Sheet{}, err
	}

	summary := BuildSummary(orders)
	sheet := BuildSheet(orders, summary, layout)

	s.logger.Info("Order report export built",
		zap.Int("orders", len(orders)),
		zap.Int("rows", len(sheet.Rows)),
		zap.String("layout", string(layout)),
	)

	return sheet, nil
}
