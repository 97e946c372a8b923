package services

import (
	"context"

	"bidback/internal/models"
)

type SourceProvider interface {
	GetSources(ctx context.Context) ([]models.Source, error)
}

type LogWriter interface {
	CreateLog(ctx context.Context, eventID *string, action string, outcome string, message *string) error
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

type WorkbookReader interface {
	ExtractTable(content []byte) (TableData, error)
}

type ArchiveReader interface {
	ExtractTables(ctx context.Context, zipBytes []byte, eventID *string) ([]TableData, error)
}

type RecordBuilder interface {
	BuildRecords(headers []string, rows [][]string) []models.BidRecord
}

type RecordSource interface {
	Records() []models.BidRecord
	Info() DatasetInfo
}

type DatasetLoader interface {
	LoadText(ctx context.Context, text string, origin string, eventID *string) (int, error)
	LoadTable(ctx context.Context, table TableData, origin string, eventID *string) (int, error)
}

type ImportMarker interface {
	IsCurrent(ctx context.Context, sourceURL string, checksum string) (bool, error)
	MarkImported(ctx context.Context, sourceURL string, checksum string) error
}
