package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	BaseURL     string

	// OCR
	OCRProvider          string
	GoogleVisionAPIKey   string
	GoogleVisionEndpoint string
	OCRSpaceAPIKey       string
	OCRSpaceLanguage     string
	TesseractLanguage    string

	// Rendering
	PDFFontPath string

	// Storage
	UploadProvider     string
	UploadDir          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3Endpoint         string
	S3PublicBaseURL    string

	// Scoring
	ScorerCompat bool
	ScorerStem   bool

	// Retention
	CleanupSchedule string
	UploadRetention time.Duration

	MaxUploadSize int64
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		BaseURL:     os.Getenv("BASE_URL"),

		OCRProvider:          os.Getenv("OCR_PROVIDER"),
		GoogleVisionAPIKey:   os.Getenv("GOOGLE_VISION_API_KEY"),
		GoogleVisionEndpoint: os.Getenv("GOOGLE_VISION_ENDPOINT"),
		OCRSpaceAPIKey:       os.Getenv("OCR_SPACE_API_KEY"),
		OCRSpaceLanguage:     os.Getenv("OCR_SPACE_LANGUAGE"),
		TesseractLanguage:    os.Getenv("TESSERACT_LANGUAGE"),

		PDFFontPath: os.Getenv("PDF_FONT_PATH"),

		UploadProvider:     os.Getenv("UPLOAD_PROVIDER"),
		UploadDir:          os.Getenv("UPLOAD_DIR"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3Endpoint:         os.Getenv("S3_ENDPOINT"),
		S3PublicBaseURL:    os.Getenv("S3_PUBLIC_BASE_URL"),

		ScorerCompat: getBool("SCORER_COMPAT", false),
		ScorerStem:   getBool("SCORER_STEM", false),

		CleanupSchedule: os.Getenv("CLEANUP_SCHEDULE"),
		UploadRetention: getDuration("UPLOAD_RETENTION", 24*time.Hour),

		MaxUploadSize: getInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.OCRProvider == "" {
		cfg.OCRProvider = "google"
	}
	if cfg.TesseractLanguage == "" {
		cfg.TesseractLanguage = "eng"
	}
	if cfg.OCRSpaceLanguage == "" {
		// OCR.space takes its own three-letter codes and no "eng+deu" combos
		cfg.OCRSpaceLanguage = "eng"
	}
	if cfg.UploadProvider == "" {
		cfg.UploadProvider = "local"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./storage"
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = "us-east-1"
	}
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = "@hourly"
	}

	return cfg
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
