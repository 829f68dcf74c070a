package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestFormatText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "sentences",
			in:   "The cat sat. The dog ran.  It rained.",
			want: []string{"The cat sat.", "The dog ran.", "It rained."},
		},
		{
			name: "newlines inside sentence",
			in:   "Photosynthesis converts\nlight into\nenergy.\nPlants need water.",
			want: []string{"Photosynthesis converts light into energy.", "Plants need water."},
		},
		{
			name: "decimal numbers stay together",
			in:   "Pi is 3.14 roughly. Done",
			want: []string{"Pi is 3.14 roughly.", "Done"},
		},
		{
			name: "blank",
			in:   " \n\t ",
			want: []string{},
		},
		{
			name: "trailing full stop",
			in:   "  Only one line.  ",
			want: []string{"Only one line."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatText(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FormatText(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGoogleVisionExtractText(t *testing.T) {
	var gotReq visionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key, got query %q", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"responses":[{"textAnnotations":[{"description":"Hello world.\nSecond line."},{"description":"Hello"}]}]}`)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider(VisionConfig{APIKey: "test-key", Endpoint: srv.URL})
	res, err := p.ExtractText(context.Background(), []byte("fake-image"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}

	if res.Text != "Hello world.\nSecond line." {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want default 0.95", res.Confidence)
	}
	if len(gotReq.Requests) != 1 || gotReq.Requests[0].Features[0].Type != "DOCUMENT_TEXT_DETECTION" {
		t.Errorf("unexpected request: %+v", gotReq)
	}
}

func TestGoogleVisionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider(VisionConfig{APIKey: "k", Endpoint: srv.URL})
	_, err := p.ExtractText(context.Background(), []byte("x"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Bad image data.") || !strings.Contains(err.Error(), visionErrorsDoc) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGoogleVisionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewGoogleVisionProvider(VisionConfig{APIKey: "k", Endpoint: srv.URL})
	if _, err := p.ExtractText(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestGoogleVisionMissingKey(t *testing.T) {
	p := NewGoogleVisionProvider(VisionConfig{})
	if _, err := p.ExtractText(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestOCRSpaceExtractText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("apikey") != "space-key" {
			t.Errorf("apikey = %q", r.FormValue("apikey"))
		}
		io.WriteString(w, `{"ParsedResults":[{"ParsedText":"Page one."},{"ParsedText":"Page two."}],"OCRExitCode":1}`)
	}))
	defer srv.Close()

	p := NewOCRSpaceProvider("space-key", "").WithEndpoint(srv.URL)
	res, err := p.ExtractText(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if res.Text != "Page one.\nPage two." {
		t.Errorf("Text = %q", res.Text)
	}
}

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) ExtractText(ctx context.Context, imageData []byte) (*OCRResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &OCRResult{Text: s.text, Confidence: 0.9}, nil
}

func (s stubProvider) GetProviderName() string { return "stub" }

func TestServiceExtractLines(t *testing.T) {
	svc := NewService(stubProvider{text: "First answer. Second answer."})
	_, lines, err := svc.ExtractLines(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExtractLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("lines = %v", lines)
	}

	svc = NewService(stubProvider{text: "   "})
	if _, _, err := svc.ExtractLines(context.Background(), nil); !errors.Is(err, ErrNoText) {
		t.Errorf("expected ErrNoText, got %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Name: "tesseract"})
	if err != nil || p.GetProviderName() != "Tesseract OCR" {
		t.Errorf("tesseract provider: %v, %v", p, err)
	}

	if _, err := NewProvider(ProviderConfig{Name: "ocrspace"}); err == nil {
		t.Error("ocrspace without key should fail")
	}

	p, err = NewProvider(ProviderConfig{Name: "", Vision: VisionConfig{APIKey: "k"}})
	if err != nil || p.GetProviderName() != "Google Cloud Vision" {
		t.Errorf("default provider: %v, %v", p, err)
	}
}

func TestNewProviderOCRSpaceLanguage(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ProviderConfig
		expected string
	}{
		{
			name:     "own language key",
			cfg:      ProviderConfig{Name: "ocrspace", OCRSpaceAPIKey: "k", OCRSpaceLanguage: "ger", TesseractLanguage: "eng+deu"},
			expected: "ger",
		},
		{
			name:     "tesseract language is not forwarded",
			cfg:      ProviderConfig{Name: "ocrspace", OCRSpaceAPIKey: "k", TesseractLanguage: "eng+deu"},
			expected: "eng",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			space, ok := p.(*OCRSpaceProvider)
			if !ok {
				t.Fatalf("expected *OCRSpaceProvider, got %T", p)
			}
			if space.language != tt.expected {
				t.Errorf("language = %q, expected %q", space.language, tt.expected)
			}
		})
	}
}
