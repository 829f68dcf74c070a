package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/models"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ConvertInput is an uploaded answer image
type ConvertInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ConversionService turns answer images into typeset PDFs
type ConversionService struct {
	ocrService     *ocr.Service
	exportService  *export.Service
	uploadService  *upload.Service
	conversionRepo repositories.ConversionRepo
	maxUploadSize  int64
}

// NewConversionService creates a new conversion service
func NewConversionService(ocrService *ocr.Service, exportService *export.Service, uploadService *upload.Service, conversionRepo repositories.ConversionRepo, maxUploadSize int64) *ConversionService {
	return &ConversionService{
		ocrService:     ocrService,
		exportService:  exportService,
		uploadService:  uploadService,
		conversionRepo: conversionRepo,
		maxUploadSize:  maxUploadSize,
	}
}

// Convert runs OCR on the image, renders the recognised sentences to PDF and stores both files
func (s *ConversionService) Convert(ctx context.Context, in ConvertInput) (*models.Conversion, error) {
	contentType := strings.ToLower(in.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = upload.DetectContentType(filepath.Ext(in.FileName))
	}
	if !supportedImageTypes[contentType] {
		return nil, ErrUnsupportedImage
	}
	if s.maxUploadSize > 0 && int64(len(in.Data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, s.maxUploadSize)
	}

	log.Info().Str("file", in.FileName).Float64("size_kb", float64(len(in.Data))/1024).Str("provider", s.ocrService.GetProviderName()).Msg("📸 Converting answer image")

	result, lines, err := s.ocrService.ExtractLines(ctx, in.Data)
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrOCRFailed, err)
	}

	pdfData, err := s.exportService.RenderText(lines)
	if err != nil {
		return nil, err
	}

	conversion := &models.Conversion{
		ID:         uuid.New(),
		SourceName: in.FileName,
		Provider:   s.ocrService.GetProviderName(),
		Confidence: result.Confidence,
		RawText:    result.Text,
		Lines:      lines,
	}

	ext := filepath.Ext(in.FileName)
	if ext == "" {
		ext = ".png"
		if contentType != "image/png" {
			ext = ".jpg"
		}
	}
	image, err := s.uploadService.Upload(ctx, bytes.NewReader(in.Data), conversion.ID.String()+ext, &upload.UploadOptions{
		Folder:      "images",
		PublicID:    conversion.ID.String(),
		ContentType: contentType,
		MaxSize:     s.maxUploadSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	conversion.SourceKey = image.PublicID

	pdf, err := s.uploadService.Upload(ctx, bytes.NewReader(pdfData), conversion.ID.String()+".pdf", &upload.UploadOptions{
		Folder:      "pdfs",
		PublicID:    conversion.ID.String(),
		ContentType: "application/pdf",
		MaxSize:     int64(len(pdfData)),
	})
	if err != nil {
		s.discard(ctx, image.PublicID)
		return nil, fmt.Errorf("failed to store PDF: %w", err)
	}
	conversion.PDFKey = pdf.PublicID
	conversion.PDFURL = pdf.URL

	if err := s.conversionRepo.Create(conversion); err != nil {
		s.discard(ctx, image.PublicID, pdf.PublicID)
		return nil, fmt.Errorf("failed to save conversion: %w", err)
	}

	log.Info().Str("id", conversion.ID.String()).Int("lines", len(lines)).Msg("✅ Answer image converted")
	return conversion, nil
}

// discard removes files stored for a conversion that did not complete
func (s *ConversionService) discard(ctx context.Context, keys ...string) {
	// The request context may already be cancelled; cleanup still has to run
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.uploadService.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("⚠️ Failed to remove orphaned upload")
		}
	}
}

// GetConversion retrieves a conversion by ID
func (s *ConversionService) GetConversion(id string) (*models.Conversion, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	conversion, err := s.conversionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return conversion, nil
}

// OpenPDF returns the rendered PDF of a conversion
func (s *ConversionService) OpenPDF(ctx context.Context, id string) (*models.Conversion, io.ReadCloser, error) {
	conversion, err := s.GetConversion(id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.uploadService.Open(ctx, conversion.PDFKey)
	if err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return conversion, rc, nil
}
