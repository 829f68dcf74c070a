package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders a Report as a single-sheet workbook
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		sheetName: "Evaluations",
	}
}

// Export writes the report as XLSX
func (e *ExcelExporter) Export(report *Report, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if report.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		if err := e.setRow(f, row, []interface{}{report.Title}, titleStyle); err != nil {
			return err
		}
		row++
		if report.Description != "" {
			if err := e.setRow(f, row, []interface{}{report.Description}, 0); err != nil {
				return err
			}
			row++
		}
		row++ // blank spacer
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHash(report.Style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	headers := make([]interface{}, len(report.Headers))
	for i, h := range report.Headers {
		headers[i] = h
	}
	if err := e.setRow(f, row, headers, headerStyle); err != nil {
		return err
	}
	row++

	stripeStyle := 0
	if report.Style.AlternateRows && report.Style.RowBgColor2 != "" {
		stripeStyle, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(report.Style.RowBgColor2)}},
		})
		if err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	for i, values := range report.Rows {
		style := 0
		if i%2 == 1 {
			style = stripeStyle
		}
		if err := e.setRow(f, row, values, style); err != nil {
			return err
		}
		row++
	}

	if len(report.Summary) > 0 {
		boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create summary style: %w", err)
		}
		for _, values := range report.Summary {
			if err := e.setRow(f, row, values, boldStyle); err != nil {
				return err
			}
			row++
		}
	}

	for col, width := range report.Style.ColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("invalid column %d: %w", col, err)
		}
		if err := f.SetColWidth(e.sheetName, name, name, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if report.Style.FreezeHeader {
		topLeft, _ := excelize.CoordinatesToCellName(1, headerRow+1)
		if err := f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// setRow writes values starting at column A of row, applying style when non-zero
func (e *ExcelExporter) setRow(f *excelize.File, row int, values []interface{}, style int) error {
	if len(values) == 0 {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(e.sheetName, start, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	if style != 0 {
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		if err := f.SetCellStyle(e.sheetName, start, end, style); err != nil {
			return fmt.Errorf("failed to style row %d: %w", row, err)
		}
	}
	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

// stripHash removes # from hex color codes
func stripHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
