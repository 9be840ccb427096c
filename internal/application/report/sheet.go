package report

import (
	"strconv"

	"github.com/orderdesk/backend/internal/domain/ordering"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ColumnCount is the width of the detail table
const ColumnCount = 8

// SheetName is the worksheet name used for order report exports
const SheetName = "Order Report"

// RowKind tags each row with its structural purpose. Styling locates
// rows through these tags, never by position or by sniffing cell text.
type RowKind int

const (
	RowBlank RowKind = iota
	RowSectionHeader
	RowColumnHeader
	RowSummaryLine
	RowDetailLine
	RowOrderTotal
)

// Row is a single sheet row with display-ready cells
type Row struct {
	Kind  RowKind
	Cells []string
}

// Layout selects how the detail table renders repeated order fields
type Layout string

const (
	// LayoutGrouped blanks repeated date/customer/state cells and adds
	// per-order total rows. This is the canonical layout.
	LayoutGrouped Layout = "grouped"
	// LayoutMerged is LayoutGrouped with real cell merges across each
	// order's row span instead of blank suppression
	LayoutMerged Layout = "merged"
	// LayoutFlat repeats every field on every line and omits the
	// per-order total rows
	LayoutFlat Layout = "flat"
)

// ParseLayout validates a layout name, defaulting to LayoutGrouped for
// the empty string
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "":
		return LayoutGrouped, nil
	case LayoutGrouped, LayoutMerged, LayoutFlat:
		return Layout(s), nil
	default:
		return "", shared.NewDomainError("INVALID_LAYOUT", "Unknown report layout: "+s)
	}
}

// DirectiveKind discriminates style directives
type DirectiveKind int

const (
	// DirectiveStyle applies a cell style over a rectangular range
	DirectiveStyle DirectiveKind = iota
	// DirectiveMerge merges a rectangular range into one cell
	DirectiveMerge
	// DirectiveColumnWidth sets the width of one column
	DirectiveColumnWidth
	// DirectiveRowHeight sets the height of a row span
	DirectiveRowHeight
)

// CellStyle is a complete cell style. Directives carry full styles so a
// serializer can apply each one independently without layering.
type CellStyle struct {
	Bold      bool
	FontSize  float64
	FillColor string // RRGGBB hex, empty for no fill
	Border    bool   // thin black border on all sides
	HAlign    string // "left", "center", "right" or empty for default
}

// StyleDirective is one declarative styling operation. Rows and columns
// are 1-based and ranges are inclusive.
type StyleDirective struct {
	Kind     DirectiveKind
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
	Col      int     // DirectiveColumnWidth only
	Width    float64 // DirectiveColumnWidth only
	Height   float64 // DirectiveRowHeight only
	Style    CellStyle
}

// Sheet is the fully assembled report document, ready for serialization
type Sheet struct {
	Name       string
	Rows       []Row
	Directives []StyleDirective
}

// RowsOfKind returns the 1-based sheet row numbers carrying the kind
func (s Sheet) RowsOfKind(kind RowKind) []int {
	var nums []int
	for i, row := range s.Rows {
		if row.Kind == kind {
			nums = append(nums, i+1)
		}
	}
	return nums
}

var detailHeader = []string{
	"Order Date", "Customer", "State", "Category",
	"Product", "Qty", "Unit Price (RM)", "Subtotal (RM)",
}

// column widths for the detail table, indexed by 1-based column
var columnWidths = map[int]float64{
	1: 25, 2: 35, 3: 12, 4: 15, 5: 25, 6: 8, 7: 18, 8: 18,
}

const (
	headerFill     = "D3D3D3"
	orderTotalFill = "F0F0F0"
	rowHeight      = 20.0
)

// orderSpan records which sheet rows one order's detail lines occupy
type orderSpan struct {
	startRow int // 1-based
	endRow   int
}

// BuildSheet assembles the two-section report document from orders
// (expected sorted by order date) and their summary. Output depends
// only on the input, so repeated builds are identical.
func BuildSheet(orders []ordering.Order, summary Summary, layout Layout) Sheet {
	b := &sheetBuilder{layout: layout}
	b.summarySection(summary)
	b.detailSection(orders)
	return Sheet{
		Name:       SheetName,
		Rows:       b.rows,
		Directives: b.styleDirectives(),
	}
}

type sheetBuilder struct {
	layout Layout
	rows   []Row
	spans  []orderSpan
}

func (b *sheetBuilder) add(kind RowKind, cells ...string) {
	b.rows = append(b.rows, Row{Kind: kind, Cells: cells})
}

func (b *sheetBuilder) blank() {
	b.rows = append(b.rows, Row{Kind: RowBlank})
}

func (b *sheetBuilder) summarySection(summary Summary) {
	b.add(RowSectionHeader, "A. Summary Section")
	b.blank()
	b.add(RowColumnHeader, "Metric", "Value")
	b.add(RowSummaryLine, "Total Orders", strconv.Itoa(summary.TotalOrders))
	b.add(RowSummaryLine, "Total Revenue", formatRM(summary.TotalRevenue))
	b.add(RowSummaryLine, "Top 3 Products", summary.TopProductNames())
	b.add(RowSummaryLine, "Average Order Value", formatRM(summary.AvgOrderValue))
}

func (b *sheetBuilder) detailSection(orders []ordering.Order) {
	b.blank()
	b.blank()
	b.add(RowSectionHeader, "B. Detailed Table")
	b.blank()
	b.add(RowColumnHeader, detailHeader...)

	lastDate := ""
	for _, order := range orders {
		date := order.OrderDate.Format("2006-01-02")
		span := orderSpan{startRow: len(b.rows) + 1}

		for idx, item := range order.Items {
			first := idx == 0

			dateCell := ""
			customerCell := ""
			stateCell := ""
			switch b.layout {
			case LayoutFlat:
				dateCell = date
				customerCell = order.Customer.Name
				stateCell = orDash(order.Customer.State)
			default:
				// date appears once per distinct date, on the first
				// line of the first order carrying it
				if first && date != lastDate {
					dateCell = date
				}
				if first {
					customerCell = order.Customer.Name
					stateCell = orDash(order.Customer.State)
				}
			}

			b.add(RowDetailLine,
				dateCell,
				customerCell,
				stateCell,
				orDash(item.Product.CategoryName()),
				item.Product.Name,
				strconv.Itoa(item.Quantity),
				formatRM(item.UnitPrice),
				formatRM(item.Subtotal()),
			)
		}
		span.endRow = len(b.rows)
		b.spans = append(b.spans, span)
		lastDate = date

		if b.layout != LayoutFlat {
			b.add(RowOrderTotal,
				"Order #"+order.OrderNo+" Total",
				"", "", "", "", "", "",
				formatRM(order.ItemsTotal()),
			)
		}
	}
}

// styleDirectives walks the assembled rows and emits styling keyed off
// the recorded row kinds
func (b *sheetBuilder) styleDirectives() []StyleDirective {
	var out []StyleDirective

	for i, row := range b.rows {
		num := i + 1
		switch row.Kind {
		case RowSectionHeader:
			out = append(out,
				StyleDirective{Kind: DirectiveMerge, StartRow: num, EndRow: num, StartCol: 1, EndCol: ColumnCount},
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 1, EndCol: ColumnCount,
					Style: CellStyle{Bold: true, FontSize: 14, HAlign: "left"}},
			)
		case RowColumnHeader:
			out = append(out, StyleDirective{
				Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 1, EndCol: len(row.Cells),
				Style: CellStyle{Bold: true, FontSize: 11, FillColor: headerFill, Border: true},
			})
		case RowSummaryLine:
			out = append(out, StyleDirective{
				Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 1, EndCol: 2,
				Style: CellStyle{Border: true},
			})
		case RowDetailLine:
			out = append(out,
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 1, EndCol: 5,
					Style: CellStyle{Border: true}},
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 6, EndCol: 6,
					Style: CellStyle{Border: true, HAlign: "center"}},
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 7, EndCol: 8,
					Style: CellStyle{Border: true, HAlign: "right"}},
			)
		case RowOrderTotal:
			out = append(out,
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 1, EndCol: 7,
					Style: CellStyle{Bold: true, FillColor: orderTotalFill, Border: true}},
				StyleDirective{Kind: DirectiveStyle, StartRow: num, EndRow: num, StartCol: 8, EndCol: 8,
					Style: CellStyle{Bold: true, FillColor: orderTotalFill, Border: true, HAlign: "right"}},
			)
		}
	}

	if b.layout == LayoutMerged {
		for _, span := range b.spans {
			if span.endRow <= span.startRow {
				continue
			}
			for col := 1; col <= 3; col++ {
				out = append(out, StyleDirective{
					Kind: DirectiveMerge, StartRow: span.startRow, EndRow: span.endRow, StartCol: col, EndCol: col,
				})
			}
		}
	}

	for col := 1; col <= ColumnCount; col++ {
		out = append(out, StyleDirective{Kind: DirectiveColumnWidth, Col: col, Width: columnWidths[col]})
	}
	out = append(out, StyleDirective{Kind: DirectiveRowHeight, StartRow: 1, EndRow: len(b.rows), Height: rowHeight})

	return out
}

// formatRM renders a decimal amount as Malaysian Ringgit for display
func formatRM(d decimal.Decimal) string {
	return valueobject.NewMoneyMYR(d).Format()
}

// orDash substitutes the report placeholder for blank values
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
