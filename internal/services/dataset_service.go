package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bidback/internal/models"
)

var ErrNoHeaderRow = errors.New("no header row detected")
var ErrNoRecords = errors.New("parsed 0 rows")

// DatasetService owns the one in-memory record set. Loads replace it
// wholesale on success and leave it untouched on failure; records are never
// mutated after a load.
type DatasetService struct {
	recordService RecordBuilder
	logService    LogWriter

	mu      sync.RWMutex
	records []models.BidRecord
	info    DatasetInfo
}

func NewDatasetService(recordService RecordBuilder, logService LogWriter) (*DatasetService, error) {
	if recordService == nil {
		return nil, errors.New("record service is nil")
	}
	if logService == nil {
		return nil, errors.New("log service is nil")
	}

	return &DatasetService{
		recordService: recordService,
		logService:    logService,
	}, nil
}

// LoadText parses a raw text blob and replaces the record set. Markup with a
// table in it goes through the HTML extractor, everything else through the
// delimited parser.
func (s *DatasetService) LoadText(ctx context.Context, text string, origin string, eventID *string) (int, error) {
	if s == nil {
		return 0, errors.New("dataset service is nil")
	}

	if table, ok := extractHTMLTable(text); ok {
		table.Name = origin
		return s.LoadTable(ctx, table, origin, eventID)
	}

	headers, rows := parseDelimited(text)
	return s.LoadTable(ctx, TableData{Name: origin, Headers: headers, Rows: rows}, origin, eventID)
}

func (s *DatasetService) LoadTable(ctx context.Context, table TableData, origin string, eventID *string) (int, error) {
	if s == nil {
		return 0, errors.New("dataset service is nil")
	}
	if s.recordService == nil {
		return 0, errors.New("record service is nil")
	}
	if s.logService == nil {
		return 0, errors.New("log service is nil")
	}

	if len(table.Headers) == 0 {
		failMsg := fmt.Sprintf("load origin=%s: no header row", origin)
		_ = s.logService.CreateLog(ctx, eventID, LogActionDataLoad, LogOutcomeFail, &failMsg)
		return 0, ErrNoHeaderRow
	}

	records := s.recordService.BuildRecords(table.Headers, table.Rows)
	if len(records) == 0 {
		failMsg := fmt.Sprintf("load origin=%s: no usable rows", origin)
		_ = s.logService.CreateLog(ctx, eventID, LogActionDataLoad, LogOutcomeFail, &failMsg)
		return 0, ErrNoRecords
	}

	s.mu.Lock()
	s.records = records
	s.info = DatasetInfo{
		Records:  len(records),
		LoadedAt: time.Now().UTC(),
		Origin:   origin,
	}
	s.mu.Unlock()

	successMsg := fmt.Sprintf("loaded records=%d origin=%s", len(records), origin)
	_ = s.logService.CreateLog(ctx, eventID, LogActionDataLoad, LogOutcomeSuccess, &successMsg)

	return len(records), nil
}

func (s *DatasetService) LoadSample(ctx context.Context) (int, error) {
	return s.LoadText(ctx, sampleTrackerData, "sample", nil)
}

// Records returns a copy of the current snapshot, so callers can iterate
// while a reload swaps the set underneath them.
func (s *DatasetService) Records() []models.BidRecord {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.BidRecord, len(s.records))
	copy(records, s.records)
	return records
}

func (s *DatasetService) Info() DatasetInfo {
	if s == nil {
		return DatasetInfo{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.info
}
