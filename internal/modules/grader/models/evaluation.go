package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Evaluation is a graded comparison of an answer PDF against a model answer PDF
type Evaluation struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OutputName     string         `gorm:"type:varchar(255);not null" json:"output_name"`
	ModelName      string         `gorm:"type:varchar(255);not null" json:"model_name"`
	OutputText     string         `gorm:"type:text" json:"output_text"`
	ModelText      string         `gorm:"type:text" json:"model_text"`
	Similarity     float64        `gorm:"type:double precision;not null" json:"similarity"`
	MaxMarks       float64        `gorm:"type:double precision;not null" json:"max_marks"`
	Marks          float64        `gorm:"type:double precision;not null" json:"marks"`
	VocabularySize int            `gorm:"not null;default:0" json:"vocabulary_size"`
	SharedTerms    pq.StringArray `gorm:"type:text[]" json:"shared_terms"`
	ScoringOptions datatypes.JSON `gorm:"type:jsonb" json:"scoring_options,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index:idx_grader_evaluations_created" json:"created_at"`
}

// TableName specifies the table name
func (Evaluation) TableName() string {
	return "grader_evaluations"
}

// BeforeCreate sets UUID before creating
func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
