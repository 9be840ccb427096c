package report

import (
	"sort"
	"strings"

	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// TopProductCount is the number of products shown in the summary ranking
const TopProductCount = 3

// ProductRank is one entry in the top-products ranking
type ProductRank struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Summary holds the aggregate figures for a set of orders
type Summary struct {
	TotalOrders   int
	TotalRevenue  decimal.Decimal
	AvgOrderValue decimal.Decimal
	TopProducts   []ProductRank
}

// TopProductNames returns the ranked product names joined with commas,
// e.g. "Laptop Pro, Running Shoes, Rice Cooker"
func (s Summary) TopProductNames() string {
	names := make([]string, len(s.TopProducts))
	for i, p := range s.TopProducts {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// BuildSummary aggregates orders into a Summary. It is a pure function:
// no I/O, deterministic for a given input. An empty input yields a
// zero-valued summary.
func BuildSummary(orders []ordering.Order) Summary {
	summary := Summary{
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}

	quantities := make(map[string]int)
	// first-seen order of product names, so equal quantities rank stably
	seen := make([]string, 0)

	for _, order := range orders {
		for _, item := range order.Items {
			summary.TotalRevenue = summary.TotalRevenue.Add(item.Subtotal())

			name := item.Product.Name
			if _, ok := quantities[name]; !ok {
				seen = append(seen, name)
			}
			quantities[name] += item.Quantity
		}
	}

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.TotalOrders))).
			Round(2)
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return quantities[seen[i]] > quantities[seen[j]]
	})
	if len(seen) > TopProductCount {
		seen = seen[:TopProductCount]
	}

	summary.TopProducts = make([]ProductRank, len(seen))
	for i, name := range seen {
		summary.TopProducts[i] = ProductRank{Name: name, Quantity: quantities[name]}
	}

	return summary
}
