package export

import (
	"fmt"

	"github.com/orderdesk/backend/internal/application/report"
	"github.com/xuri/excelize/v2"
)

// XLSXWriter serializes report sheets into xlsx workbooks
type XLSXWriter struct{}

// NewXLSXWriter creates a new XLSXWriter
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write renders the sheet into a complete xlsx workbook. Cell content
// comes from the sheet rows; formatting is applied by replaying the
// sheet's style directives.
func (w *XLSXWriter) Write(sheet report.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	for i, row := range sheet.Rows {
		if len(row.Cells) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		cells := make([]interface{}, len(row.Cells))
		for j, c := range row.Cells {
			cells[j] = c
		}
		if err := f.SetSheetRow(sheet.Name, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	styleIDs := make(map[report.CellStyle]int)
	for _, d := range sheet.Directives {
		if err := w.apply(f, sheet.Name, d, styleIDs); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *XLSXWriter) apply(f *excelize.File, name string, d report.StyleDirective, styleIDs map[report.CellStyle]int) error {
	switch d.Kind {
	case report.DirectiveStyle:
		styleID, ok := styleIDs[d.Style]
		if !ok {
			var err error
			styleID, err = f.NewStyle(buildStyle(d.Style))
			if err != nil {
				return fmt.Errorf("failed to register style: %w", err)
			}
			styleIDs[d.Style] = styleID
		}
		start, err := excelize.CoordinatesToCellName(d.StartCol, d.StartRow)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(d.EndCol, d.EndRow)
		if err != nil {
			return err
		}
		return f.SetCellStyle(name, start, end, styleID)

	case report.DirectiveMerge:
		start, err := excelize.CoordinatesToCellName(d.StartCol, d.StartRow)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(d.EndCol, d.EndRow)
		if err != nil {
			return err
		}
		return f.MergeCell(name, start, end)

	case report.DirectiveColumnWidth:
		col, err := excelize.ColumnNumberToName(d.Col)
		if err != nil {
			return err
		}
		return f.SetColWidth(name, col, col, d.Width)

	case report.DirectiveRowHeight:
		for row := d.StartRow; row <= d.EndRow; row++ {
			if err := f.SetRowHeight(name, row, d.Height); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// buildStyle converts a complete cell style into an excelize style
func buildStyle(s report.CellStyle) *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold: s.Bold,
		},
	}
	if s.FontSize > 0 {
		style.Font.Size = s.FontSize
	}
	if s.FillColor != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{s.FillColor},
		}
	}
	if s.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	if s.HAlign != "" {
		style.Alignment = &excelize.Alignment{Horizontal: s.HAlign, Vertical: "center"}
	}
	return style
}
