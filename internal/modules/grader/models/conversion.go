package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Conversion is an OCR run that turned an answer image into a PDF
type Conversion struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SourceName string         `gorm:"type:varchar(255);not null" json:"source_name"`
	SourceKey  string         `gorm:"type:text" json:"source_key,omitempty"`
	Provider   string         `gorm:"type:varchar(50);not null" json:"provider"`
	Confidence float64        `gorm:"type:float" json:"confidence"`
	RawText    string         `gorm:"type:text" json:"raw_text"`
	Lines      pq.StringArray `gorm:"type:text[]" json:"lines"`
	PDFKey     string         `gorm:"type:text;not null" json:"pdf_key"`
	PDFURL     string         `gorm:"type:text;not null" json:"pdf_url"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Conversion) TableName() string {
	return "grader_conversions"
}

// BeforeCreate sets UUID before creating
func (c *Conversion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
