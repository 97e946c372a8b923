package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImportRecord struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	SourceURL  string    `gorm:"type:text;not null;uniqueIndex" json:"source_url"`
	Checksum   string    `gorm:"type:text;not null" json:"checksum"`
	ImportedAt time.Time `gorm:"not null" json:"imported_at"`
}

func (r *ImportRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
