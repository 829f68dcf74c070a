package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/pdftext"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/similarity"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/models"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/repositories"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxExportRows = 1000

// EvaluateInput is a student answer PDF and the model answer it is graded against
type EvaluateInput struct {
	OutputName string
	OutputData []byte
	ModelName  string
	ModelData  []byte
	MaxMarks   float64
}

// EvaluationResult is a stored evaluation plus its display strings
type EvaluationResult struct {
	*models.Evaluation
	SimilarityText string `json:"similarity_text"`
	MarksText      string `json:"marks_text"`
}

// ScoreInput is a direct text comparison request
type ScoreInput struct {
	TextA    string  `json:"text_a"`
	TextB    string  `json:"text_b"`
	MaxMarks float64 `json:"max_marks"`
}

// ScoreResult is the outcome of a direct text comparison
type ScoreResult struct {
	Similarity     float64  `json:"similarity"`
	Marks          float64  `json:"marks"`
	MaxMarks       float64  `json:"max_marks"`
	SimilarityText string   `json:"similarity_text"`
	MarksText      string   `json:"marks_text"`
	VocabularySize int      `json:"vocabulary_size"`
	SharedTerms    []string `json:"shared_terms"`
}

// EvaluationService grades answer PDFs against model answers
type EvaluationService struct {
	extractor      pdftext.Extractor
	scorer         *similarity.Scorer
	evaluationRepo repositories.EvaluationRepo
	exportService  *export.Service
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(extractor pdftext.Extractor, scorer *similarity.Scorer, evaluationRepo repositories.EvaluationRepo, exportService *export.Service) *EvaluationService {
	return &EvaluationService{
		extractor:      extractor,
		scorer:         scorer,
		evaluationRepo: evaluationRepo,
		exportService:  exportService,
	}
}

// Evaluate extracts both PDFs, scores them and stores the evaluation
func (s *EvaluationService) Evaluate(ctx context.Context, in EvaluateInput) (*EvaluationResult, error) {
	// Reject bad maxima before doing any extraction work
	if err := similarity.ValidateMaxMarks(in.MaxMarks); err != nil {
		return nil, err
	}
	if !pdftext.IsPDF(in.OutputData) {
		return nil, fmt.Errorf("output_pdf: %w", pdftext.ErrNotPDF)
	}
	if !pdftext.IsPDF(in.ModelData) {
		return nil, fmt.Errorf("model_pdf: %w", pdftext.ErrNotPDF)
	}

	outputText, err := s.extract(ctx, in.OutputData)
	if err != nil {
		return nil, fmt.Errorf("output_pdf: %w", err)
	}
	modelText, err := s.extract(ctx, in.ModelData)
	if err != nil {
		return nil, fmt.Errorf("model_pdf: %w", err)
	}

	cmp, err := s.scorer.CompareDocuments(similarity.Document(outputText), similarity.Document(modelText))
	if err != nil {
		return nil, err
	}
	marks, err := similarity.ComputeMarks(cmp.Similarity, in.MaxMarks)
	if err != nil {
		return nil, err
	}

	optionsJSON, err := json.Marshal(s.scorer.Options())
	if err != nil {
		return nil, fmt.Errorf("failed to encode scoring options: %w", err)
	}

	evaluation := &models.Evaluation{
		OutputName:     in.OutputName,
		ModelName:      in.ModelName,
		OutputText:     outputText,
		ModelText:      modelText,
		Similarity:     cmp.Similarity,
		MaxMarks:       in.MaxMarks,
		Marks:          marks,
		VocabularySize: cmp.VocabularySize,
		SharedTerms:    cmp.SharedTerms,
		ScoringOptions: datatypes.JSON(optionsJSON),
	}
	if err := s.evaluationRepo.Create(evaluation); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	log.Info().
		Str("id", evaluation.ID.String()).
		Str("similarity", similarity.FormatPercent(cmp.Similarity)).
		Str("marks", similarity.FormatMarks(marks, in.MaxMarks)).
		Msg("📊 Answer evaluated")

	return newEvaluationResult(evaluation), nil
}

// Score compares two texts directly without storing anything
func (s *EvaluationService) Score(in ScoreInput) (*ScoreResult, error) {
	if err := similarity.ValidateMaxMarks(in.MaxMarks); err != nil {
		return nil, err
	}

	cmp, err := s.scorer.Compare(in.TextA, in.TextB)
	if err != nil {
		return nil, err
	}
	marks, err := similarity.ComputeMarks(cmp.Similarity, in.MaxMarks)
	if err != nil {
		return nil, err
	}

	return &ScoreResult{
		Similarity:     cmp.Similarity,
		Marks:          marks,
		MaxMarks:       in.MaxMarks,
		SimilarityText: similarity.FormatPercent(cmp.Similarity),
		MarksText:      similarity.FormatMarks(marks, in.MaxMarks),
		VocabularySize: cmp.VocabularySize,
		SharedTerms:    cmp.SharedTerms,
	}, nil
}

// GetEvaluation retrieves an evaluation by ID
func (s *EvaluationService) GetEvaluation(id string) (*EvaluationResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	evaluation, err := s.evaluationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return newEvaluationResult(evaluation), nil
}

// ListEvaluations returns a page of evaluations, newest first
func (s *EvaluationService) ListEvaluations(limit, offset int) ([]EvaluationResult, int64, error) {
	evaluations, total, err := s.evaluationRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}

	results := make([]EvaluationResult, 0, len(evaluations))
	for i := range evaluations {
		results = append(results, *newEvaluationResult(&evaluations[i]))
	}
	return results, total, nil
}

// ExportEvaluations renders the most recent evaluations as a PDF or Excel report.
// It returns the file bytes, content type and file extension.
func (s *EvaluationService) ExportEvaluations(format export.Format) ([]byte, string, string, error) {
	evaluations, _, err := s.evaluationRepo.List(maxExportRows, 0)
	if err != nil {
		return nil, "", "", err
	}

	report := buildEvaluationReport(evaluations)
	return s.exportService.ExportReport(report, format)
}

func (s *EvaluationService) extract(ctx context.Context, data []byte) (string, error) {
	text, err := s.extractor.ExtractBytes(ctx, data)
	if err != nil {
		if errors.Is(err, pdftext.ErrNotPDF) || errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return text, nil
}

func buildEvaluationReport(evaluations []models.Evaluation) *export.Report {
	style := export.DefaultStyle()
	style.ColumnWeights = []float64{3, 3, 1.2, 1.2, 1, 2}
	style.ColumnWidths = map[int]float64{0: 32, 1: 32, 2: 14, 3: 12, 4: 10, 5: 20}

	report := &export.Report{
		Title:       "Evaluation Report",
		Description: fmt.Sprintf("%d evaluations", len(evaluations)),
		Author:      "answer-grader",
		CreatedAt:   time.Now(),
		Headers:     []string{"Answer", "Model Answer", "Similarity", "Marks", "Max Marks", "Evaluated At"},
		Style:       style,
	}

	var totalSimilarity, totalRatio float64
	for _, e := range evaluations {
		report.Rows = append(report.Rows, []interface{}{
			e.OutputName,
			e.ModelName,
			similarity.FormatPercent(e.Similarity),
			fmt.Sprintf("%.2f", e.Marks),
			e.MaxMarks,
			e.CreatedAt.Format("2006-01-02 15:04"),
		})
		totalSimilarity += e.Similarity
		totalRatio += e.Marks / e.MaxMarks
	}

	if n := float64(len(evaluations)); n > 0 {
		report.Summary = [][]interface{}{
			{"Average", "", similarity.FormatPercent(totalSimilarity / n), fmt.Sprintf("%.2f%%", totalRatio/n*100), "", ""},
		}
	}

	return report
}

func newEvaluationResult(e *models.Evaluation) *EvaluationResult {
	return &EvaluationResult{
		Evaluation:     e,
		SimilarityText: similarity.FormatPercent(e.Similarity),
		MarksText:      similarity.FormatMarks(e.Marks, e.MaxMarks),
	}
}
