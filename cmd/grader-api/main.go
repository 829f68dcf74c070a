package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/cleanup"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/pdftext"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/similarity"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/handlers"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/repositories"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/services"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/answer-grader-be/cmd/grader-api/docs"
)

// @title Answer Grader API
// @version 1.0
// @description Converts handwritten answer images to PDF and grades answer PDFs against model answers by bag-of-words cosine similarity
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Info().Msgf("🚀 Starting grader-api on port %s", cfg.Port)

	// Init database
	db, err := database.NewDB(cfg.DatabaseURL, cfg.Env == "development")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect database")
	}
	defer db.Close()

	// Init repositories
	conversionRepo := repositories.NewConversionRepo(db.GORM)
	evaluationRepo := repositories.NewEvaluationRepo(db.GORM)

	// Init OCR service (multi-provider support)
	ocrProvider, err := ocr.NewProvider(ocr.ProviderConfig{
		Name: cfg.OCRProvider,
		Vision: ocr.VisionConfig{
			APIKey:   cfg.GoogleVisionAPIKey,
			Endpoint: cfg.GoogleVisionEndpoint,
		},
		OCRSpaceAPIKey:    cfg.OCRSpaceAPIKey,
		OCRSpaceLanguage:  cfg.OCRSpaceLanguage,
		TesseractLanguage: cfg.TesseractLanguage,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize OCR provider")
	}
	ocrService := ocr.NewService(ocrProvider)

	// Init storage (local or S3)
	var storage upload.Provider
	var localStorage *upload.LocalProvider
	switch cfg.UploadProvider {
	case "s3":
		storage, err = upload.NewS3Provider(context.Background(), upload.S3Config{
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	default:
		localStorage, err = upload.NewLocalProvider(cfg.UploadDir, cfg.BaseURL)
		storage = localStorage
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	uploadService := upload.NewService(storage)

	// Local uploads expire; S3 relies on bucket lifecycle rules
	if localStorage != nil {
		scheduler, err := cleanup.NewScheduler(localStorage, cfg.CleanupSchedule, cfg.UploadRetention)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cleanup scheduler")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Scorer
	scorerOpts := similarity.DefaultOptions()
	if cfg.ScorerCompat {
		scorerOpts = similarity.CompatOptions()
	}
	scorerOpts.Stem = cfg.ScorerStem
	scorer := similarity.NewScorer(scorerOpts)

	exportService := export.NewService(export.TextPDFOptions{
		FontPath: cfg.PDFFontPath,
		Title:    "Answer",
	})

	log.Info().Str("ocr", ocrService.GetProviderName()).Str("storage", uploadService.GetProviderName()).
		Bool("compat", cfg.ScorerCompat).Bool("stem", cfg.ScorerStem).Msg("🔍 Providers ready")

	// Init services
	conversionService := services.NewConversionService(ocrService, exportService, uploadService, conversionRepo, cfg.MaxUploadSize)
	evaluationService := services.NewEvaluationService(pdftext.NewTabulaExtractor(""), scorer, evaluationRepo, exportService)

	// Init handlers
	healthHandler := handlers.NewHealthHandler(ocrService.GetProviderName(), uploadService.GetProviderName())
	conversionHandler := handlers.NewConversionHandler(conversionService)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService)

	// Init Fiber app; an evaluation carries two PDFs
	app := fiber.New(fiber.Config{
		AppName:   "Answer Grader API",
		BodyLimit: int(2*cfg.MaxUploadSize) + 1024*1024,
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Stored files (local storage only)
	if localStorage != nil {
		app.Static("/files", localStorage.BasePath())
	}

	// Health
	app.Get("/health", healthHandler.GetHealth)

	// Conversion routes
	app.Post("/conversions", conversionHandler.CreateConversion)
	app.Get("/conversions/:id", conversionHandler.GetConversion)
	app.Get("/conversions/:id/pdf", conversionHandler.DownloadPDF)

	// Evaluation routes (export before :id)
	app.Post("/evaluations", evaluationHandler.CreateEvaluation)
	app.Get("/evaluations", evaluationHandler.ListEvaluations)
	app.Get("/evaluations/export", evaluationHandler.ExportEvaluations)
	app.Get("/evaluations/:id", evaluationHandler.GetEvaluation)

	// Direct scoring
	app.Post("/similarity", evaluationHandler.ScoreTexts)

	go func() {
		log.Info().Msgf("✅ grader-api running at :%s", cfg.Port)
		log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down grader-api...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("👋 Goodbye!")
}
