package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bidback/internal/models"

	"gorm.io/gorm"
)

type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) (*ImportService, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}

	return &ImportService{db: db}, nil
}

// IsCurrent reports whether the source was already imported with this
// checksum. An unknown source is simply not current.
func (s *ImportService) IsCurrent(ctx context.Context, sourceURL string, checksum string) (bool, error) {
	if s == nil {
		return false, errors.New("import service is nil")
	}
	if s.db == nil {
		return false, errors.New("db is nil")
	}
	if sourceURL == "" {
		return false, errors.New("source url is empty")
	}

	var record models.ImportRecord
	err := s.db.WithContext(ctx).First(&record, "source_url = ?", sourceURL).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("query import record: %w", err)
	}

	return record.Checksum == checksum, nil
}

func (s *ImportService) MarkImported(ctx context.Context, sourceURL string, checksum string) error {
	if s == nil {
		return errors.New("import service is nil")
	}
	if s.db == nil {
		return errors.New("db is nil")
	}
	if sourceURL == "" {
		return errors.New("source url is empty")
	}

	record := models.ImportRecord{SourceURL: sourceURL}
	err := s.db.WithContext(ctx).
		Where("source_url = ?", sourceURL).
		Assign(map[string]interface{}{
			"checksum":    checksum,
			"imported_at": time.Now().UTC(),
		}).
		FirstOrCreate(&record).Error
	if err != nil {
		return fmt.Errorf("upsert import record: %w", err)
	}

	return nil
}
