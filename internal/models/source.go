package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Source struct {
	ID      string  `gorm:"type:uuid;primaryKey" json:"id"`
	URL     string  `gorm:"type:text;not null" json:"url"`
	Comment *string `gorm:"type:text" json:"comment,omitempty"`
}

func (s *Source) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
