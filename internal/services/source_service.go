package services

import (
	"context"
	"errors"
	"fmt"

	"bidback/internal/models"

	"gorm.io/gorm"
)

var ErrSourceURLEmpty = errors.New("source url is empty")
var ErrSourceExists = errors.New("source already registered")

// SourceService manages the registry of tracker export URLs the refresh
// pipeline pulls from.
type SourceService struct {
	db *gorm.DB
}

func NewSourceService(db *gorm.DB) (*SourceService, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}

	return &SourceService{db: db}, nil
}

func (s *SourceService) GetSources(ctx context.Context) ([]models.Source, error) {
	if s == nil {
		return nil, errors.New("source service is nil")
	}
	if s.db == nil {
		return nil, errors.New("db is nil")
	}

	var sources []models.Source
	if err := s.db.WithContext(ctx).Order("url asc").Find(&sources).Error; err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	return sources, nil
}

// AddSource registers a new export URL. The URL is the natural key: a second
// registration of the same URL fails with ErrSourceExists instead of creating
// a duplicate row the pipeline would fetch twice.
func (s *SourceService) AddSource(ctx context.Context, url string, comment *string) (models.Source, error) {
	if s == nil {
		return models.Source{}, errors.New("source service is nil")
	}
	if s.db == nil {
		return models.Source{}, errors.New("db is nil")
	}

	url = cleanText(url)
	if url == "" {
		return models.Source{}, ErrSourceURLEmpty
	}

	var existing models.Source
	err := s.db.WithContext(ctx).Where("url = ?", url).First(&existing).Error
	if err == nil {
		return models.Source{}, ErrSourceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Source{}, fmt.Errorf("check source: %w", err)
	}

	source := models.Source{URL: url, Comment: comment}
	if err := s.db.WithContext(ctx).Create(&source).Error; err != nil {
		return models.Source{}, fmt.Errorf("create source: %w", err)
	}

	return source, nil
}
