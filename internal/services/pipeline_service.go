package services

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

type PipelineService struct {
	sourceService  SourceProvider
	fetchService   Fetcher
	xlsxService    WorkbookReader
	archiveService ArchiveReader
	importService  ImportMarker
	datasetService DatasetLoader
	logService     LogWriter
}

func NewPipelineService(
	sourceService SourceProvider,
	fetchService Fetcher,
	xlsxService WorkbookReader,
	archiveService ArchiveReader,
	importService ImportMarker,
	datasetService DatasetLoader,
	logService LogWriter,
) (*PipelineService, error) {
	if sourceService == nil {
		return nil, errors.New("source service is nil")
	}
	if fetchService == nil {
		return nil, errors.New("fetch service is nil")
	}
	if xlsxService == nil {
		return nil, errors.New("xlsx service is nil")
	}
	if archiveService == nil {
		return nil, errors.New("archive service is nil")
	}
	if importService == nil {
		return nil, errors.New("import service is nil")
	}
	if datasetService == nil {
		return nil, errors.New("dataset service is nil")
	}
	if logService == nil {
		return nil, errors.New("log service is nil")
	}

	return &PipelineService{
		sourceService:  sourceService,
		fetchService:   fetchService,
		xlsxService:    xlsxService,
		archiveService: archiveService,
		importService:  importService,
		datasetService: datasetService,
		logService:     logService,
	}, nil
}

// Refresh fetches every configured source and reloads the dataset from each
// payload whose checksum changed since the last run; force reloads unchanged
// payloads too. A failing source does not stop the remaining ones; the first
// error is returned at the end.
func (s *PipelineService) Refresh(ctx context.Context, force bool) error {
	if s == nil {
		return errors.New("pipeline service is nil")
	}
	if s.sourceService == nil {
		return errors.New("source service is nil")
	}
	if s.fetchService == nil {
		return errors.New("fetch service is nil")
	}
	if s.importService == nil {
		return errors.New("import service is nil")
	}
	if s.datasetService == nil {
		return errors.New("dataset service is nil")
	}
	if s.logService == nil {
		return errors.New("log service is nil")
	}

	eventID := uuid.NewString()

	startMsg := "pipeline refresh started"
	if err := s.logService.CreateLog(ctx, &eventID, LogActionDataRetrieval, LogOutcomeSuccess, &startMsg); err != nil {
		return err
	}

	sources, err := s.sourceService.GetSources(ctx)
	if err != nil {
		failMsg := fmt.Sprintf("get sources: %v", err)
		_ = s.logService.CreateLog(ctx, &eventID, LogActionDataRetrieval, LogOutcomeFail, &failMsg)
		return fmt.Errorf("get sources: %w", err)
	}

	var refreshErr error
	for _, source := range sources {
		if source.URL == "" {
			failMsg := "source url is empty"
			_ = s.logService.CreateLog(ctx, &eventID, LogActionDataRetrieval, LogOutcomeFail, &failMsg)
			if refreshErr == nil {
				refreshErr = errors.New("source url is empty")
			}
			continue
		}

		if err := s.refreshSource(ctx, source.URL, force, &eventID); err != nil {
			failMsg := fmt.Sprintf("url=%s: %v", source.URL, err)
			_ = s.logService.CreateLog(ctx, &eventID, LogActionDataRetrieval, LogOutcomeFail, &failMsg)
			if refreshErr == nil {
				refreshErr = fmt.Errorf("refresh %s: %w", source.URL, err)
			}
		}
	}

	return refreshErr
}

func (s *PipelineService) refreshSource(ctx context.Context, url string, force bool, eventID *string) error {
	result, err := s.fetchService.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed with status %d", result.StatusCode)
	}
	if len(result.Body) == 0 {
		return errors.New("response body is empty")
	}

	statusMsg := fmt.Sprintf("url=%s status=%d", url, result.StatusCode)
	_ = s.logService.CreateLog(ctx, eventID, LogActionDataRetrieval, LogOutcomeSuccess, &statusMsg)

	checksum := payloadChecksum(result.Body)

	if !force {
		current, err := s.importService.IsCurrent(ctx, url, checksum)
		if err != nil {
			return fmt.Errorf("check import state: %w", err)
		}
		if current {
			skipMsg := fmt.Sprintf("url=%s unchanged, skipping", url)
			_ = s.logService.CreateLog(ctx, eventID, LogActionDataRetrieval, LogOutcomeSuccess, &skipMsg)
			return nil
		}
	}

	count, err := s.ingest(ctx, result.Body, url, eventID)
	if err != nil {
		return err
	}

	if err := s.importService.MarkImported(ctx, url, checksum); err != nil {
		return fmt.Errorf("mark imported: %w", err)
	}

	doneMsg := fmt.Sprintf("url=%s loaded records=%d", url, count)
	_ = s.logService.CreateLog(ctx, eventID, LogActionDataRetrieval, LogOutcomeSuccess, &doneMsg)

	return nil
}

// Ingest loads an uploaded payload straight into the dataset, sniffing
// whether it is a workbook, a zip archive or plain text.
func (s *PipelineService) Ingest(ctx context.Context, body []byte, origin string) (int, error) {
	if s == nil {
		return 0, errors.New("pipeline service is nil")
	}
	if s.xlsxService == nil {
		return 0, errors.New("xlsx service is nil")
	}
	if s.archiveService == nil {
		return 0, errors.New("archive service is nil")
	}
	if s.datasetService == nil {
		return 0, errors.New("dataset service is nil")
	}
	if s.logService == nil {
		return 0, errors.New("log service is nil")
	}
	if len(body) == 0 {
		return 0, errors.New("payload is empty")
	}

	eventID := uuid.NewString()

	return s.ingest(ctx, body, origin, &eventID)
}

func (s *PipelineService) ingest(ctx context.Context, body []byte, origin string, eventID *string) (int, error) {
	switch {
	case isWorkbookPayload(body):
		table, err := s.xlsxService.ExtractTable(body)
		if err != nil {
			failMsg := fmt.Sprintf("parse workbook origin=%s: %v", origin, err)
			_ = s.logService.CreateLog(ctx, eventID, LogActionWorkbookParse, LogOutcomeFail, &failMsg)
			return 0, fmt.Errorf("extract workbook: %w", err)
		}
		parseMsg := fmt.Sprintf("parsed workbook origin=%s rows=%d", origin, len(table.Rows))
		_ = s.logService.CreateLog(ctx, eventID, LogActionWorkbookParse, LogOutcomeSuccess, &parseMsg)
		return s.datasetService.LoadTable(ctx, table, origin, eventID)
	case isZipPayload(body):
		tables, err := s.archiveService.ExtractTables(ctx, body, eventID)
		if err != nil {
			return 0, fmt.Errorf("extract archive: %w", err)
		}
		return s.loadFirstTable(ctx, tables, origin, eventID)
	default:
		return s.datasetService.LoadText(ctx, string(body), origin, eventID)
	}
}

func (s *PipelineService) loadFirstTable(ctx context.Context, tables []TableData, origin string, eventID *string) (int, error) {
	var firstErr error
	for _, table := range tables {
		count, err := s.datasetService.LoadTable(ctx, table, origin, eventID)
		if err == nil {
			return count, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return 0, firstErr
	}

	return 0, errors.New("archive contained no loadable table")
}

// Workbooks are zip containers too, so probe for the OOXML marker before
// treating the payload as a plain archive.
func isWorkbookPayload(body []byte) bool {
	if !isZipPayload(body) {
		return false
	}

	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return false
	}

	for _, file := range reader.File {
		if file.Name == "[Content_Types].xml" {
			return true
		}
	}

	return false
}

func isZipPayload(body []byte) bool {
	return bytes.HasPrefix(body, []byte("PK\x03\x04"))
}

func payloadChecksum(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
