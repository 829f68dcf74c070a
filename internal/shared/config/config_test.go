package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "BASE_URL", "OCR_PROVIDER", "UPLOAD_PROVIDER", "UPLOAD_DIR", "CLEANUP_SCHEDULE", "UPLOAD_RETENTION", "SCORER_COMPAT", "MAX_UPLOAD_SIZE", "OCR_SPACE_LANGUAGE", "TESSERACT_LANGUAGE", "S3_PUBLIC_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Errorf("unexpected defaults: port=%s env=%s", cfg.Port, cfg.Env)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %s", cfg.BaseURL)
	}
	if cfg.OCRProvider != "google" || cfg.UploadProvider != "local" {
		t.Errorf("providers = %s / %s", cfg.OCRProvider, cfg.UploadProvider)
	}
	if cfg.UploadRetention != 24*time.Hour || cfg.CleanupSchedule != "@hourly" {
		t.Errorf("retention = %s schedule = %s", cfg.UploadRetention, cfg.CleanupSchedule)
	}
	if cfg.ScorerCompat {
		t.Error("ScorerCompat should default to false")
	}
	if cfg.MaxUploadSize != 10*1024*1024 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if cfg.OCRSpaceLanguage != "eng" || cfg.TesseractLanguage != "eng" {
		t.Errorf("languages = %s / %s", cfg.OCRSpaceLanguage, cfg.TesseractLanguage)
	}
	if cfg.S3PublicBaseURL != "" {
		t.Errorf("S3PublicBaseURL = %s", cfg.S3PublicBaseURL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OCR_PROVIDER", "tesseract")
	t.Setenv("UPLOAD_RETENTION", "90m")
	t.Setenv("SCORER_COMPAT", "true")
	t.Setenv("MAX_UPLOAD_SIZE", "2048")
	t.Setenv("TESSERACT_LANGUAGE", "eng+deu")
	t.Setenv("OCR_SPACE_LANGUAGE", "ger")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/grader")

	cfg := LoadConfig()

	if cfg.Port != "9090" || cfg.OCRProvider != "tesseract" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.UploadRetention != 90*time.Minute {
		t.Errorf("UploadRetention = %s", cfg.UploadRetention)
	}
	if !cfg.ScorerCompat {
		t.Error("ScorerCompat should be true")
	}
	if cfg.MaxUploadSize != 2048 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if cfg.TesseractLanguage != "eng+deu" || cfg.OCRSpaceLanguage != "ger" {
		t.Errorf("languages = %s / %s", cfg.TesseractLanguage, cfg.OCRSpaceLanguage)
	}
	if cfg.S3PublicBaseURL != "https://cdn.example.com/grader" {
		t.Errorf("S3PublicBaseURL = %s", cfg.S3PublicBaseURL)
	}
}
