package handlers

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ConversionHandler handles image to PDF conversion requests
type ConversionHandler struct {
	conversionService *services.ConversionService
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(conversionService *services.ConversionService) *ConversionHandler {
	return &ConversionHandler{conversionService: conversionService}
}

// CreateConversion godoc
// @Summary Convert an answer image to PDF
// @Description Upload a handwritten or printed answer image, extract its text with OCR and render it as a PDF with one sentence per paragraph
// @Tags Conversions
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Answer image (JPEG or PNG)"
// @Success 201 {object} models.Conversion
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /conversions [post]
func (h *ConversionHandler) CreateConversion(c *fiber.Ctx) error {
	file, data, err := readFormFile(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	conversion, err := h.conversionService.Convert(c.UserContext(), services.ConvertInput{
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		log.Warn().Err(err).Str("file", file.Filename).Msg("⚠️ Conversion failed")
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conversion)
}

// GetConversion godoc
// @Summary Get conversion
// @Description Get a conversion with its recognised text and PDF URL
// @Tags Conversions
// @Produce json
// @Param id path string true "Conversion ID"
// @Success 200 {object} models.Conversion
// @Failure 404 {object} map[string]string
// @Router /conversions/{id} [get]
func (h *ConversionHandler) GetConversion(c *fiber.Ctx) error {
	conversion, err := h.conversionService.GetConversion(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(conversion)
}

// DownloadPDF godoc
// @Summary Download converted PDF
// @Description Stream the PDF rendered for a conversion
// @Tags Conversions
// @Produce application/pdf
// @Param id path string true "Conversion ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /conversions/{id}/pdf [get]
func (h *ConversionHandler) DownloadPDF(c *fiber.Ctx) error {
	conversion, rc, err := h.conversionService.OpenPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("inline; filename=%s.pdf", conversion.ID))
	// fasthttp closes the stream once the body is written
	return c.SendStream(rc)
}
