// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
)

// ErrNotPDF is returned when a payload does not carry a PDF header
var ErrNotPDF = errors.New("not a PDF document")

// Extractor pulls the text content out of PDF documents
type Extractor interface {
	ExtractFile(ctx context.Context, path string) (string, error)
	ExtractBytes(ctx context.Context, data []byte) (string, error)
}

// TabulaExtractor extracts text with tabula's layout-aware reader
type TabulaExtractor struct {
	tempDir string
}

// NewTabulaExtractor creates an extractor; tempDir holds spooled uploads ("" = os.TempDir)
func NewTabulaExtractor(tempDir string) *TabulaExtractor {
	return &TabulaExtractor{tempDir: tempDir}
}

// PageSeparator joins the text of consecutive pages
const PageSeparator = "\n"

// ExtractFile returns the text of every page, joined with PageSeparator.
// The file is opened once; per-page extractors borrow the reader and never close it.
func (e *TabulaExtractor) ExtractFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := reader.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer r.Close()

	count, err := r.PageCount()
	if err != nil {
		return "", fmt.Errorf("failed to count PDF pages: %w", err)
	}

	doc := tabula.FromReader(r)
	pages := make([]string, 0, count)
	for page := 1; page <= count; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, warnings, err := doc.Pages(page).Text()
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d: %w", page, err)
		}
		if len(warnings) > 0 {
			log.Warn().Str("file", path).Int("page", page).Int("warnings", len(warnings)).Msg("⚠️ PDF extraction warnings")
		}
		pages = append(pages, text)
	}

	return strings.TrimSpace(strings.Join(pages, PageSeparator)), nil
}

// ExtractBytes spools data to a temporary file and extracts it
func (e *TabulaExtractor) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	f, err := os.CreateTemp(e.tempDir, "extract_*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return e.ExtractFile(ctx, f.Name())
}

// IsPDF reports whether data starts with a PDF header (leading whitespace tolerated)
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\x00"), []byte("%PDF-"))
}
