package export

import (
	"bytes"
	"fmt"
)

// Service provides high-level export functionality
type Service struct {
	textExporter  *TextPDFExporter
	pdfExporter   Exporter
	excelExporter Exporter
}

// NewService creates a new export service; opts configures answer-sheet rendering
func NewService(opts TextPDFOptions) *Service {
	return &Service{
		textExporter:  NewTextPDFExporter(opts),
		pdfExporter:   NewReportPDFExporter(),
		excelExporter: NewExcelExporter(),
	}
}

// RenderText renders formatted lines into PDF bytes
func (s *Service) RenderText(lines []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.textExporter.RenderLines(lines, &buf); err != nil {
		return nil, fmt.Errorf("PDF render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportReport exports a report in the given format.
// It returns the file bytes, content type and file extension.
func (s *Service) ExportReport(report *Report, format Format) ([]byte, string, string, error) {
	var exporter Exporter
	switch format {
	case FormatPDF:
		exporter = s.pdfExporter
	case FormatExcel:
		exporter = s.excelExporter
	default:
		return nil, "", "", fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(report, &buf); err != nil {
		return nil, "", "", fmt.Errorf("export failed: %w", err)
	}

	return buf.Bytes(), exporter.GetContentType(), exporter.GetFileExtension(), nil
}
