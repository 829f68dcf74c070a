package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	visionErrorsDoc       = "https://cloud.google.com/apis/design/errors"
)

// VisionConfig carries the credentials and endpoint for Google Cloud Vision
type VisionConfig struct {
	APIKey   string
	Endpoint string        // Defaults to the public annotate endpoint
	Timeout  time.Duration // Defaults to 60s
}

// GoogleVisionProvider implements OCR using Google Cloud Vision API
type GoogleVisionProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogleVisionProvider creates a new Google Vision OCR provider
func NewGoogleVisionProvider(cfg VisionConfig) *GoogleVisionProvider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultVisionEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &GoogleVisionProvider{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetProviderName returns the provider name
func (p *GoogleVisionProvider) GetProviderName() string {
	return "Google Cloud Vision"
}

// Google Vision API request/response structures
type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"` // base64 encoded image
}

type visionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type visionResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score,omitempty"`
		} `json:"textAnnotations"`
		FullTextAnnotation *struct {
			Pages []struct {
				Confidence float64 `json:"confidence"`
			} `json:"pages"`
		} `json:"fullTextAnnotation,omitempty"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// ExtractText runs dense document text detection on the image
func (p *GoogleVisionProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google vision API key is not configured")
	}

	reqBody := visionRequest{
		Requests: []visionRequestItem{
			{
				Image: visionImage{
					Content: base64.StdEncoding.EncodeToString(imageData),
				},
				Features: []visionFeature{
					{Type: "DOCUMENT_TEXT_DETECTION"},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := p.endpoint + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google vision error (status: %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(visionResp.Responses) == 0 {
		return nil, fmt.Errorf("no response from Google Vision")
	}
	first := visionResp.Responses[0]

	if first.Error != nil && first.Error.Message != "" {
		return nil, fmt.Errorf("google vision API error: %s\nFor more info on error messages, check: %s", first.Error.Message, visionErrorsDoc)
	}

	if len(first.TextAnnotations) == 0 {
		return &OCRResult{
			Text:       "",
			Confidence: 0,
		}, nil
	}

	// First annotation contains the full text
	confidence := first.TextAnnotations[0].Score
	if confidence == 0 && first.FullTextAnnotation != nil && len(first.FullTextAnnotation.Pages) > 0 {
		var sum float64
		for _, page := range first.FullTextAnnotation.Pages {
			sum += page.Confidence
		}
		confidence = sum / float64(len(first.FullTextAnnotation.Pages))
	}
	if confidence == 0 {
		confidence = 0.95 // Default confidence if not provided
	}

	return &OCRResult{
		Text:       first.TextAnnotations[0].Description,
		Confidence: confidence,
	}, nil
}
