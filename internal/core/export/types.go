package export

import (
	"io"
	"time"
)

// Format represents the export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Exporter is the interface for tabular report formats
type Exporter interface {
	Export(report *Report, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Report is a titled table, e.g. a list of graded evaluations
type Report struct {
	Title       string
	Description string
	Author      string
	CreatedAt   time.Time

	Headers []string
	Rows    [][]interface{}

	// Footer rows rendered in bold after the data (totals, averages)
	Summary [][]interface{}

	Style Style
}

// Style defines styling options shared by the report exporters
type Style struct {
	Orientation   string // "portrait" or "landscape"
	PageSize      string // "A4", "Letter", etc.
	HeaderBgColor string // Hex color
	AlternateRows bool
	RowBgColor1   string // Hex color for odd rows
	RowBgColor2   string // Hex color for even rows
	FontSize      float64

	// Relative column weights for PDF; nil means equal widths
	ColumnWeights []float64
	// Excel column widths by index
	ColumnWidths map[int]float64
	FreezeHeader bool
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		Orientation:   "landscape",
		PageSize:      "A4",
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		FontSize:      9,
		ColumnWidths:  make(map[int]float64),
		FreezeHeader:  true,
	}
}
