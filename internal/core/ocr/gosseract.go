//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// GosseractProvider runs Tesseract in-process through libtesseract bindings
type GosseractProvider struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewGosseractProvider creates an in-process Tesseract provider.
// Close must be called to release the engine.
func NewGosseractProvider(language string) (*GosseractProvider, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
	}
	return &GosseractProvider{client: client}, nil
}

// ExtractText extracts text from image data (PNG, JPEG, TIFF, ...)
func (p *GosseractProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// the underlying engine is not safe for concurrent use
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := p.client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	return &OCRResult{
		Text:       strings.TrimSpace(text),
		Confidence: 0.90,
	}, nil
}

// GetProviderName returns the provider name
func (p *GosseractProvider) GetProviderName() string {
	return "Tesseract (gosseract)"
}

// Close releases the engine
func (p *GosseractProvider) Close() error {
	return p.client.Close()
}
