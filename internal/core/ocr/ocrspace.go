package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultOCRSpaceEndpoint = "https://api.ocr.space/parse/image"

// OCRSpaceProvider implements OCR using OCR.space API
type OCRSpaceProvider struct {
	apiKey   string
	language string
	endpoint string
	client   *http.Client
}

// NewOCRSpaceProvider creates a new OCR.space provider.
// language is an OCR.space language code ("eng" when empty).
func NewOCRSpaceProvider(apiKey, language string) *OCRSpaceProvider {
	if language == "" {
		language = "eng"
	}
	return &OCRSpaceProvider{
		apiKey:   apiKey,
		language: language,
		endpoint: defaultOCRSpaceEndpoint,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithEndpoint points the provider at another OCR.space compatible endpoint
func (p *OCRSpaceProvider) WithEndpoint(endpoint string) *OCRSpaceProvider {
	p.endpoint = endpoint
	return p
}

// GetProviderName returns the provider name
func (p *OCRSpaceProvider) GetProviderName() string {
	return "OCR.space"
}

// OCR.space API response structure
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText        string `json:"ParsedText"`
		FileParseExitCode int    `json:"FileParseExitCode"`
	} `json:"ParsedResults"`
	OCRExitCode           int      `json:"OCRExitCode"`
	IsErroredOnProcessing bool     `json:"IsErroredOnProcessing"`
	ErrorMessage          []string `json:"ErrorMessage,omitempty"`
}

// ExtractText extracts text from image using OCR.space API
func (p *OCRSpaceProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	// Create multipart form data
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "answer.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}

	if err := writer.WriteField("apikey", p.apiKey); err != nil {
		return nil, fmt.Errorf("failed to write api key: %w", err)
	}

	if err := writer.WriteField("language", p.language); err != nil {
		return nil, fmt.Errorf("failed to write language: %w", err)
	}

	// Engine 2 keeps line breaks, which the sentence formatter relies on
	if err := writer.WriteField("OCREngine", "2"); err != nil {
		return nil, fmt.Errorf("failed to write engine: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ocrspace request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ocrspace error (status: %d): %s", resp.StatusCode, string(body))
	}

	// Parse response
	var ocrResp ocrSpaceResponse
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for errors
	if ocrResp.IsErroredOnProcessing {
		errMsg := "unknown error"
		if len(ocrResp.ErrorMessage) > 0 {
			errMsg = ocrResp.ErrorMessage[0]
		}
		return nil, fmt.Errorf("ocrspace processing error: %s", errMsg)
	}

	if ocrResp.OCRExitCode != 1 {
		return nil, fmt.Errorf("ocrspace exit code: %d", ocrResp.OCRExitCode)
	}

	// Extract text
	if len(ocrResp.ParsedResults) == 0 {
		return &OCRResult{
			Text:       "",
			Confidence: 0,
		}, nil
	}

	var sb strings.Builder
	for i, r := range ocrResp.ParsedResults {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.ParsedText)
	}
	text := sb.String()

	// OCR.space doesn't provide confidence score, use default
	confidence := 0.85

	return &OCRResult{
		Text:       text,
		Confidence: confidence,
	}, nil
}
