package repositories

import (
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/models"
	"gorm.io/gorm"
)

// ConversionRepo interface defines conversion persistence
type ConversionRepo interface {
	Create(conversion *models.Conversion) error
	GetByID(id string) (*models.Conversion, error)
}

type conversionRepo struct {
	db *gorm.DB
}

// NewConversionRepo creates a new conversion repository
func NewConversionRepo(db *gorm.DB) ConversionRepo {
	return &conversionRepo{db: db}
}

// Create inserts a new conversion
func (r *conversionRepo) Create(conversion *models.Conversion) error {
	return r.db.Create(conversion).Error
}

// GetByID retrieves a conversion by ID
func (r *conversionRepo) GetByID(id string) (*models.Conversion, error) {
	var conversion models.Conversion
	err := r.db.Where("id = ?", id).First(&conversion).Error
	if err != nil {
		return nil, err
	}
	return &conversion, nil
}
