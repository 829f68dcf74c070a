package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const unicodeFamily = "DejaVu"

// TextPDFOptions configures how plain text lines are laid out
type TextPDFOptions struct {
	FontPath   string  // TTF with Unicode coverage; empty uses core Helvetica (cp1252)
	FontSize   float64 // Points, default 12
	LineHeight float64 // Millimetres per wrapped line, default 10
	Margin     float64 // Bottom auto page-break margin in mm, default 15
	Title      string  // Document metadata title
}

// TextPDFExporter renders lines of text into a flowing A4 document
type TextPDFExporter struct {
	opts TextPDFOptions
}

// NewTextPDFExporter creates a text renderer, filling defaults
func NewTextPDFExporter(opts TextPDFOptions) *TextPDFExporter {
	if opts.FontSize == 0 {
		opts.FontSize = 12
	}
	if opts.LineHeight == 0 {
		opts.LineHeight = 10
	}
	if opts.Margin == 0 {
		opts.Margin = 15
	}
	return &TextPDFExporter{opts: opts}
}

// RenderLines writes one wrapped paragraph per line
func (e *TextPDFExporter) RenderLines(lines []string, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, e.opts.Margin)
	if e.opts.Title != "" {
		pdf.SetTitle(e.opts.Title, true)
	}
	pdf.SetCreator("answer-grader", true)
	pdf.AddPage()

	translate := func(s string) string { return s }
	if e.opts.FontPath != "" {
		if _, err := os.Stat(e.opts.FontPath); err != nil {
			return fmt.Errorf("font not found: %w", err)
		}
		pdf.AddUTF8Font(unicodeFamily, "", e.opts.FontPath)
		pdf.SetFont(unicodeFamily, "", e.opts.FontSize)
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
		pdf.SetFont("Helvetica", "", e.opts.FontSize)
	}

	for _, line := range lines {
		pdf.MultiCell(0, e.opts.LineHeight, translate(line), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (e *TextPDFExporter) GetContentType() string {
	return "application/pdf"
}
