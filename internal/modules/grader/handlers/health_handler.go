package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ocrProvider     string
	storageProvider string
}

func NewHealthHandler(ocrProvider, storageProvider string) *HealthHandler {
	return &HealthHandler{ocrProvider: ocrProvider, storageProvider: storageProvider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "grader-api",
		"ocr":     h.ocrProvider,
		"storage": h.storageProvider,
	})
}
