//go:build !ocr

package ocr

import "context"

// GosseractProvider is a placeholder when built without the ocr tag
type GosseractProvider struct{}

// NewGosseractProvider always fails without the ocr build tag
func NewGosseractProvider(language string) (*GosseractProvider, error) {
	return nil, ErrOCRNotEnabled
}

// ExtractText always fails without the ocr build tag
func (p *GosseractProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	return nil, ErrOCRNotEnabled
}

// GetProviderName returns the provider name
func (p *GosseractProvider) GetProviderName() string {
	return "Tesseract (gosseract, disabled)"
}

// Close is a no-op
func (p *GosseractProvider) Close() error {
	return nil
}
