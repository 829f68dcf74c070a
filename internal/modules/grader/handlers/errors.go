package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"unicode/utf8"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/pdftext"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/similarity"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// errorStatus maps service errors onto HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, similarity.ErrInvalidArgument),
		errors.Is(err, pdftext.ErrNotPDF),
		errors.Is(err, services.ErrUnsupportedImage):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, similarity.ErrInvalidInput),
		errors.Is(err, ocr.ErrNoText):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrOCRFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error body; internal failures are logged and not echoed
func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ Request failed")
		message = "internal server error"
		if errors.Is(err, services.ErrExtractionFailed) {
			message = services.ErrExtractionFailed.Error()
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// maxFileNameLength matches the VARCHAR(255) name columns
const maxFileNameLength = 255

// readFormFile loads a multipart file field fully into memory
func readFormFile(c *fiber.Ctx, field string) (*multipart.FileHeader, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%s file is required", field)
	}
	if utf8.RuneCountInString(file.Filename) > maxFileNameLength {
		return nil, nil, fmt.Errorf("%s file name must be at most %d characters", field, maxFileNameLength)
	}

	fileHandle, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s file", field)
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s file", field)
	}
	return file, data, nil
}
