package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// ReportPDFExporter renders a Report as a paginated PDF table
type ReportPDFExporter struct{}

// NewReportPDFExporter creates a new PDF report exporter
func NewReportPDFExporter() *ReportPDFExporter {
	return &ReportPDFExporter{}
}

// Export writes the report as PDF
func (p *ReportPDFExporter) Export(report *Report, writer io.Writer) error {
	if len(report.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	style := report.Style
	orientation := "P"
	if style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontSize := style.FontSize
	if fontSize == 0 {
		fontSize = 9
	}

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	if report.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr(report.Title))
		pdf.Ln(12)
	}
	if report.Description != "" {
		pdf.SetFont("Helvetica", "", fontSize)
		pdf.MultiCell(0, 5, tr(report.Description), "", "", false)
		pdf.Ln(4)
	}
	if !report.CreatedAt.IsZero() {
		pdf.SetFont("Helvetica", "I", 8)
		meta := fmt.Sprintf("Generated: %s", report.CreatedAt.Format("2006-01-02 15:04:05"))
		if report.Author != "" {
			meta += " | Author: " + report.Author
		}
		pdf.Cell(0, 5, tr(meta))
		pdf.Ln(8)
	}

	widths := columnWidths(pdf, len(report.Headers), style.ColumnWeights)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", fontSize)
		fill := style.HeaderBgColor != ""
		if fill {
			r, g, b := hexToRGB(style.HeaderBgColor)
			pdf.SetFillColor(r, g, b)
			pdf.SetTextColor(255, 255, 255)
		}
		for i, header := range report.Headers {
			pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", fontSize)
	}

	drawRow := func(row []interface{}, fill bool) {
		if pdf.GetY()+6 > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader()
		}
		for i := range report.Headers {
			value := ""
			if i < len(row) {
				value = fmt.Sprintf("%v", row[i])
			}
			pdf.CellFormat(widths[i], 6, tr(value), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	drawHeader()
	for rowIdx, row := range report.Rows {
		fill := false
		if style.AlternateRows {
			color := style.RowBgColor1
			if rowIdx%2 == 1 {
				color = style.RowBgColor2
			}
			r, g, b := hexToRGB(color)
			pdf.SetFillColor(r, g, b)
			fill = true
		}
		drawRow(row, fill)
	}

	if len(report.Summary) > 0 {
		pdf.SetFont("Helvetica", "B", fontSize)
		for _, row := range report.Summary {
			drawRow(row, false)
		}
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *ReportPDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *ReportPDFExporter) GetFileExtension() string {
	return ".pdf"
}

// columnWidths spreads the usable page width across n columns by weight
func columnWidths(pdf *gofpdf.Fpdf, n int, weights []float64) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	if len(weights) != n {
		weights = make([]float64, n)
		for i := range weights {
			weights[i] = 1
		}
	}

	var total float64
	for _, w := range weights {
		total += w
	}

	widths := make([]float64, n)
	for i, w := range weights {
		widths[i] = usable * w / total
	}
	return widths
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
