package services

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func createImportRecordsTable(t *testing.T, db *gorm.DB) {
	t.Helper()

	query := "CREATE TABLE import_records (id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))), source_url TEXT NOT NULL UNIQUE, checksum TEXT NOT NULL, imported_at DATETIME NOT NULL)"
	if err := db.Exec(query).Error; err != nil {
		t.Fatalf("create import_records table: %v", err)
	}
}

func TestNewImportServiceNilDB(t *testing.T) {
	if _, err := NewImportService(nil); err == nil {
		t.Fatalf("NewImportService nil db: expected error")
	}
}

func TestImportServiceMarkAndCheck(t *testing.T) {
	db := openTestDB(t)
	createImportRecordsTable(t, db)

	service, err := NewImportService(db)
	if err != nil {
		t.Fatalf("NewImportService: %v", err)
	}

	current, err := service.IsCurrent(context.Background(), "https://example.com/export", "sum-1")
	if err != nil {
		t.Fatalf("IsCurrent: %v", err)
	}
	if current {
		t.Fatalf("expected unknown source not current")
	}

	if err := service.MarkImported(context.Background(), "https://example.com/export", "sum-1"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	current, err = service.IsCurrent(context.Background(), "https://example.com/export", "sum-1")
	if err != nil {
		t.Fatalf("IsCurrent: %v", err)
	}
	if !current {
		t.Fatalf("expected source current after import")
	}

	current, err = service.IsCurrent(context.Background(), "https://example.com/export", "sum-2")
	if err != nil {
		t.Fatalf("IsCurrent: %v", err)
	}
	if current {
		t.Fatalf("expected changed checksum not current")
	}
}

func TestImportServiceChecksumRotation(t *testing.T) {
	db := openTestDB(t)
	createImportRecordsTable(t, db)

	service, err := NewImportService(db)
	if err != nil {
		t.Fatalf("NewImportService: %v", err)
	}

	if err := service.MarkImported(context.Background(), "https://example.com/export", "sum-1"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}
	if err := service.MarkImported(context.Background(), "https://example.com/export", "sum-2"); err != nil {
		t.Fatalf("MarkImported second: %v", err)
	}

	var count int64
	if err := db.Table("import_records").Where("source_url = ?", "https://example.com/export").Count(&count).Error; err != nil {
		t.Fatalf("count import records: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	current, err := service.IsCurrent(context.Background(), "https://example.com/export", "sum-2")
	if err != nil {
		t.Fatalf("IsCurrent: %v", err)
	}
	if !current {
		t.Fatalf("expected latest checksum current")
	}
}

func TestImportServiceNilReceiver(t *testing.T) {
	var service *ImportService
	if _, err := service.IsCurrent(context.Background(), "https://example.com", "sum"); err == nil {
		t.Fatalf("IsCurrent nil receiver: expected error")
	}
	if err := service.MarkImported(context.Background(), "https://example.com", "sum"); err == nil {
		t.Fatalf("MarkImported nil receiver: expected error")
	}
}
