package repo

import (
	"errors"
	"fmt"
	"strings"

	"bidback/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database behind the dsn. Postgres dsns are recognized by
// their usual shapes; anything else is treated as a sqlite path.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is empty")
	}

	dialector := sqlite.Open(dsn)
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func Migrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}

	if err := db.AutoMigrate(&models.Source{}, &models.Log{}, &models.ImportRecord{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// EnsureDefaultSource seeds the configured source when the table is empty.
// An empty url means no source is configured and nothing is seeded.
func EnsureDefaultSource(db *gorm.DB, url string, comment string) error {
	if db == nil {
		return errors.New("db is nil")
	}
	if url == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Source{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count sources: %w", err)
	}
	if count > 0 {
		return nil
	}

	source := models.Source{URL: url}
	if comment != "" {
		source.Comment = &comment
	}
	if err := db.Create(&source).Error; err != nil {
		return fmt.Errorf("create default source: %w", err)
	}

	return nil
}
