package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/services"
	"github.com/gofiber/fiber/v2"
)

// EvaluationHandler handles answer grading requests
type EvaluationHandler struct {
	evaluationService *services.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

// CreateEvaluation godoc
// @Summary Grade an answer PDF
// @Description Extract text from the answer and model answer PDFs, score their similarity and scale it to marks
// @Tags Evaluations
// @Accept multipart/form-data
// @Produce json
// @Param output_pdf formData file true "Answer PDF"
// @Param model_pdf formData file true "Model answer PDF"
// @Param max_marks formData number true "Maximum marks, greater than 0"
// @Success 201 {object} services.EvaluationResult
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /evaluations [post]
func (h *EvaluationHandler) CreateEvaluation(c *fiber.Ctx) error {
	rawMax := strings.TrimSpace(c.FormValue("max_marks"))
	if rawMax == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_marks is required",
		})
	}
	maxMarks, err := strconv.ParseFloat(rawMax, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "max_marks must be a number",
		})
	}

	output, outputData, err := readFormFile(c, "output_pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	model, modelData, err := readFormFile(c, "model_pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.evaluationService.Evaluate(c.UserContext(), services.EvaluateInput{
		OutputName: output.Filename,
		OutputData: outputData,
		ModelName:  model.Filename,
		ModelData:  modelData,
		MaxMarks:   maxMarks,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListEvaluations godoc
// @Summary List evaluations
// @Description List stored evaluations, newest first
// @Tags Evaluations
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /evaluations [get]
func (h *EvaluationHandler) ListEvaluations(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	evaluations, total, err := h.evaluationService.ListEvaluations(limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"evaluations": evaluations,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

// GetEvaluation godoc
// @Summary Get evaluation
// @Description Get an evaluation including both extracted texts
// @Tags Evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} services.EvaluationResult
// @Failure 404 {object} map[string]string
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) GetEvaluation(c *fiber.Ctx) error {
	result, err := h.evaluationService.GetEvaluation(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// ExportEvaluations godoc
// @Summary Export evaluations
// @Description Download recent evaluations as a PDF or Excel report
// @Tags Evaluations
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "pdf or excel" default(pdf)
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /evaluations/export [get]
func (h *EvaluationHandler) ExportEvaluations(c *fiber.Ctx) error {
	format := export.Format(strings.ToLower(c.Query("format", string(export.FormatPDF))))
	if format != export.FormatPDF && format != export.FormatExcel {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be pdf or excel",
		})
	}

	data, contentType, ext, err := h.evaluationService.ExportEvaluations(format)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("evaluations_%s%s", time.Now().Format("20060102_150405"), ext)
	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

// ScoreTexts godoc
// @Summary Score two texts
// @Description Compute the similarity of two texts and the marks it earns, without storing anything
// @Tags Similarity
// @Accept json
// @Produce json
// @Param request body services.ScoreInput true "Texts and maximum marks"
// @Success 200 {object} services.ScoreResult
// @Failure 400 {object} map[string]string
// @Router /similarity [post]
func (h *EvaluationHandler) ScoreTexts(c *fiber.Ctx) error {
	var req services.ScoreInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.evaluationService.Score(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
