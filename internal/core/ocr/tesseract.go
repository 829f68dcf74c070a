package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TesseractProvider implements OCR by shelling out to the tesseract binary
type TesseractProvider struct {
	tesseractPath string
	language      string
}

// NewTesseractProvider creates a new Tesseract OCR provider.
// language is a tesseract language spec such as "eng" or "eng+deu".
func NewTesseractProvider(language string) *TesseractProvider {
	if language == "" {
		language = "eng"
	}

	return &TesseractProvider{
		tesseractPath: "tesseract", // Assumes tesseract is in PATH
		language:      language,
	}
}

// ExtractText extracts text from an image using Tesseract
func (p *TesseractProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	imageFile, err := os.CreateTemp("", "ocr_image_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(imageFile.Name())

	if _, err := imageFile.Write(imageData); err != nil {
		imageFile.Close()
		return nil, fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := imageFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp image: %w", err)
	}

	// tesseract <image> stdout -l <lang>
	cmd := exec.CommandContext(ctx, p.tesseractPath, imageFile.Name(), "stdout", "-l", p.language)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tesseract command failed: %w, output: %s", err, stderr.String())
	}

	// The CLI does not report page confidence on stdout
	return &OCRResult{
		Text:       strings.TrimSpace(string(output)),
		Confidence: 0.90,
	}, nil
}

// GetProviderName returns the name of the provider
func (p *TesseractProvider) GetProviderName() string {
	return "Tesseract OCR"
}
