package ocr

import (
	"context"
	"errors"
)

var (
	// ErrNoText is returned by ExtractLines when the image carried no readable text
	ErrNoText = errors.New("no text detected in image")

	// ErrOCRNotEnabled is returned when the in-process engine was not compiled in.
	// Rebuild with -tags ocr (requires libtesseract) to enable it.
	ErrOCRNotEnabled = errors.New("in-process OCR not enabled; rebuild with -tags ocr")
)

// Provider interface for OCR services
type Provider interface {
	// ExtractText extracts the full text of an image
	ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// OCRResult contains the extracted text and metadata
type OCRResult struct {
	Text       string  `json:"text"`       // Raw extracted text
	Confidence float64 `json:"confidence"` // OCR confidence score (0-1)
}

// Service wraps the OCR provider
type Service struct {
	provider Provider
}

// NewService creates a new OCR service with the given provider
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ExtractText extracts text from image using the configured provider
func (s *Service) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	return s.provider.ExtractText(ctx, imageData)
}

// ExtractLines runs OCR and splits the result into sentence lines ready for rendering
func (s *Service) ExtractLines(ctx context.Context, imageData []byte) (*OCRResult, []string, error) {
	result, err := s.provider.ExtractText(ctx, imageData)
	if err != nil {
		return nil, nil, err
	}

	lines := FormatText(result.Text)
	if len(lines) == 0 {
		return result, nil, ErrNoText
	}
	return result, lines, nil
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
