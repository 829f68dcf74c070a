package repositories

import (
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/models"
	"gorm.io/gorm"
)

// EvaluationRepo interface defines evaluation persistence
type EvaluationRepo interface {
	Create(evaluation *models.Evaluation) error
	GetByID(id string) (*models.Evaluation, error)
	List(limit, offset int) ([]models.Evaluation, int64, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo creates a new evaluation repository
func NewEvaluationRepo(db *gorm.DB) EvaluationRepo {
	return &evaluationRepo{db: db}
}

// Create inserts a new evaluation
func (r *evaluationRepo) Create(evaluation *models.Evaluation) error {
	return r.db.Create(evaluation).Error
}

// GetByID retrieves an evaluation by ID
func (r *evaluationRepo) GetByID(id string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := r.db.Where("id = ?", id).First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// List returns evaluations newest first along with the total count
func (r *evaluationRepo) List(limit, offset int) ([]models.Evaluation, int64, error) {
	var total int64
	if err := r.db.Model(&models.Evaluation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var evaluations []models.Evaluation
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}
