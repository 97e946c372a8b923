package services

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"bidback/internal/models"
)

type stubSourceService struct {
	sources []models.Source
	err     error
}

func (s stubSourceService) GetSources(ctx context.Context) ([]models.Source, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sources, nil
}

type stubFetcher struct {
	results map[string]FetchResult
	errs    map[string]error
}

func (s stubFetcher) Fetch(ctx context.Context, url string) (FetchResult, error) {
	if err, ok := s.errs[url]; ok {
		return FetchResult{URL: url}, err
	}
	if result, ok := s.results[url]; ok {
		return result, nil
	}
	return FetchResult{URL: url, StatusCode: http.StatusNotFound}, nil
}

type stubWorkbookReader struct {
	table TableData
	err   error
}

func (s stubWorkbookReader) ExtractTable(content []byte) (TableData, error) {
	if s.err != nil {
		return TableData{}, s.err
	}
	return s.table, nil
}

type stubArchiveReader struct {
	tables []TableData
	err    error
}

func (s stubArchiveReader) ExtractTables(ctx context.Context, zipBytes []byte, eventID *string) ([]TableData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tables, nil
}

type stubImportMarker struct {
	current map[string]string
	marked  []string
}

func (s *stubImportMarker) IsCurrent(ctx context.Context, sourceURL string, checksum string) (bool, error) {
	return s.current[sourceURL] == checksum, nil
}

func (s *stubImportMarker) MarkImported(ctx context.Context, sourceURL string, checksum string) error {
	if s.current == nil {
		s.current = make(map[string]string)
	}
	s.current[sourceURL] = checksum
	s.marked = append(s.marked, sourceURL)
	return nil
}

type stubDatasetLoader struct {
	textOrigins []string
	tables      []TableData
}

func (s *stubDatasetLoader) LoadText(ctx context.Context, text string, origin string, eventID *string) (int, error) {
	s.textOrigins = append(s.textOrigins, origin)
	return 1, nil
}

func (s *stubDatasetLoader) LoadTable(ctx context.Context, table TableData, origin string, eventID *string) (int, error) {
	if len(table.Headers) == 0 {
		return 0, ErrNoHeaderRow
	}
	s.tables = append(s.tables, table)
	return len(table.Rows), nil
}

func newTestPipeline(t *testing.T, sources stubSourceService, fetcher stubFetcher) (*PipelineService, *stubDatasetLoader, *stubImportMarker, *stubLogWriter) {
	t.Helper()

	loader := &stubDatasetLoader{}
	marker := &stubImportMarker{}
	logWriter := &stubLogWriter{}
	service, err := NewPipelineService(
		sources,
		fetcher,
		stubWorkbookReader{},
		stubArchiveReader{},
		marker,
		loader,
		logWriter,
	)
	if err != nil {
		t.Fatalf("NewPipelineService: %v", err)
	}

	return service, loader, marker, logWriter
}

func TestPipelineServiceRefresh(t *testing.T) {
	body := []byte("Bidding Authority,Company\nSECI,Ecoren\n")
	sources := stubSourceService{sources: []models.Source{
		{URL: "https://example.com/ok"},
		{URL: "https://example.com/fail"},
	}}
	fetcher := stubFetcher{results: map[string]FetchResult{
		"https://example.com/ok":   {URL: "https://example.com/ok", StatusCode: http.StatusOK, Body: body},
		"https://example.com/fail": {URL: "https://example.com/fail", StatusCode: http.StatusInternalServerError, Body: []byte("fail")},
	}}

	service, loader, marker, logWriter := newTestPipeline(t, sources, fetcher)

	if err := service.Refresh(context.Background(), false); err == nil {
		t.Fatalf("Refresh: expected error from failing source")
	}

	if len(loader.textOrigins) != 1 || loader.textOrigins[0] != "https://example.com/ok" {
		t.Fatalf("text loads = %v, want one load from the ok source", loader.textOrigins)
	}
	if len(marker.marked) != 1 || marker.marked[0] != "https://example.com/ok" {
		t.Fatalf("marked = %v, want the ok source", marker.marked)
	}

	if len(logWriter.entries) != 4 {
		t.Fatalf("log entries = %d, want 4", len(logWriter.entries))
	}
	if logWriter.entries[0].action != LogActionDataRetrieval {
		t.Fatalf("log action = %q, want %q", logWriter.entries[0].action, LogActionDataRetrieval)
	}
	if logWriter.entries[3].outcome != LogOutcomeFail {
		t.Fatalf("last outcome = %q, want %q", logWriter.entries[3].outcome, LogOutcomeFail)
	}

	eventID := logWriter.entries[0].eventID
	if eventID == nil || *eventID == "" {
		t.Fatalf("event id is empty")
	}
	for _, entry := range logWriter.entries {
		if entry.eventID == nil || *entry.eventID != *eventID {
			t.Fatalf("event id = %v, want %q shared across the run", entry.eventID, *eventID)
		}
	}
}

func TestPipelineServiceRefreshSkipsUnchanged(t *testing.T) {
	body := []byte("Bidding Authority,Company\nSECI,Ecoren\n")
	sources := stubSourceService{sources: []models.Source{{URL: "https://example.com/ok"}}}
	fetcher := stubFetcher{results: map[string]FetchResult{
		"https://example.com/ok": {URL: "https://example.com/ok", StatusCode: http.StatusOK, Body: body},
	}}

	service, loader, marker, logWriter := newTestPipeline(t, sources, fetcher)
	marker.current = map[string]string{"https://example.com/ok": payloadChecksum(body)}

	if err := service.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if len(loader.textOrigins) != 0 || len(loader.tables) != 0 {
		t.Fatalf("loads = %v/%v, want none for unchanged source", loader.textOrigins, loader.tables)
	}
	if len(marker.marked) != 0 {
		t.Fatalf("marked = %v, want none", marker.marked)
	}
	last := logWriter.entries[len(logWriter.entries)-1]
	if last.outcome != LogOutcomeSuccess {
		t.Fatalf("log outcome = %q, want %q", last.outcome, LogOutcomeSuccess)
	}
}

func TestPipelineServiceRefreshForceReloadsUnchanged(t *testing.T) {
	body := []byte("Bidding Authority,Company\nSECI,Ecoren\n")
	sources := stubSourceService{sources: []models.Source{{URL: "https://example.com/ok"}}}
	fetcher := stubFetcher{results: map[string]FetchResult{
		"https://example.com/ok": {URL: "https://example.com/ok", StatusCode: http.StatusOK, Body: body},
	}}

	service, loader, marker, _ := newTestPipeline(t, sources, fetcher)
	marker.current = map[string]string{"https://example.com/ok": payloadChecksum(body)}

	if err := service.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if len(loader.textOrigins) != 1 || loader.textOrigins[0] != "https://example.com/ok" {
		t.Fatalf("text loads = %v, want a load despite the unchanged checksum", loader.textOrigins)
	}
	if len(marker.marked) != 1 {
		t.Fatalf("marked = %v, want the source marked again", marker.marked)
	}
}

func TestPipelineServiceRefreshSourceError(t *testing.T) {
	service, _, _, logWriter := newTestPipeline(t, stubSourceService{err: errors.New("boom")}, stubFetcher{})

	if err := service.Refresh(context.Background(), false); err == nil {
		t.Fatalf("Refresh: expected error")
	}
	if len(logWriter.entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(logWriter.entries))
	}
	if logWriter.entries[1].outcome != LogOutcomeFail {
		t.Fatalf("log outcome = %q, want %q", logWriter.entries[1].outcome, LogOutcomeFail)
	}
}

func TestPipelineServiceIngestText(t *testing.T) {
	service, loader, _, _ := newTestPipeline(t, stubSourceService{}, stubFetcher{})

	count, err := service.Ingest(context.Background(), []byte("Bidding Authority,Company\nSECI,Ecoren\n"), "upload")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if len(loader.textOrigins) != 1 || loader.textOrigins[0] != "upload" {
		t.Fatalf("text loads = %v, want one upload", loader.textOrigins)
	}
}

func TestPipelineServiceIngestWorkbook(t *testing.T) {
	workbook := buildWorkbook(t, [][]string{
		{"Bidding Authority", "Company"},
		{"SECI", "Ecoren"},
	})
	table := TableData{Name: "Sheet1", Headers: []string{"Bidding Authority", "Company"}, Rows: [][]string{{"SECI", "Ecoren"}}}

	loader := &stubDatasetLoader{}
	service, err := NewPipelineService(
		stubSourceService{},
		stubFetcher{},
		stubWorkbookReader{table: table},
		stubArchiveReader{},
		&stubImportMarker{},
		loader,
		&stubLogWriter{},
	)
	if err != nil {
		t.Fatalf("NewPipelineService: %v", err)
	}

	count, err := service.Ingest(context.Background(), workbook, "upload")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if len(loader.tables) != 1 || !reflect.DeepEqual(loader.tables[0], table) {
		t.Fatalf("table loads = %v, want the extracted table", loader.tables)
	}
}

func TestPipelineServiceIngestArchiveLoadsFirstUsableTable(t *testing.T) {
	zipBytes := buildZip(t, []zipEntry{
		{name: "tracker.csv", content: []byte("Bidding Authority,Company\nSECI,Ecoren\n")},
	})
	tables := []TableData{
		{Name: "empty.csv"},
		{Name: "tracker.csv", Headers: []string{"Bidding Authority", "Company"}, Rows: [][]string{{"SECI", "Ecoren"}}},
	}

	loader := &stubDatasetLoader{}
	service, err := NewPipelineService(
		stubSourceService{},
		stubFetcher{},
		stubWorkbookReader{},
		stubArchiveReader{tables: tables},
		&stubImportMarker{},
		loader,
		&stubLogWriter{},
	)
	if err != nil {
		t.Fatalf("NewPipelineService: %v", err)
	}

	count, err := service.Ingest(context.Background(), zipBytes, "upload")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if len(loader.tables) != 1 || loader.tables[0].Name != "tracker.csv" {
		t.Fatalf("table loads = %v, want the first usable table", loader.tables)
	}
}

func TestPipelineServiceIngestEmptyPayload(t *testing.T) {
	service, _, _, _ := newTestPipeline(t, stubSourceService{}, stubFetcher{})

	if _, err := service.Ingest(context.Background(), nil, "upload"); err == nil {
		t.Fatalf("Ingest empty payload: expected error")
	}
}

func TestPayloadClassification(t *testing.T) {
	workbook := buildWorkbook(t, [][]string{{"A", "B"}})
	plainZip := buildZip(t, []zipEntry{{name: "tracker.csv", content: []byte("a,b\n1,2\n")}})
	text := []byte("Bidding Authority,Company\n")

	if !isWorkbookPayload(workbook) {
		t.Fatalf("workbook bytes not classified as workbook")
	}
	if isWorkbookPayload(plainZip) {
		t.Fatalf("plain zip classified as workbook")
	}
	if !isZipPayload(plainZip) {
		t.Fatalf("zip bytes not classified as zip")
	}
	if isZipPayload(text) {
		t.Fatalf("text bytes classified as zip")
	}
}

func TestPayloadChecksum(t *testing.T) {
	first := payloadChecksum([]byte("abc"))
	if len(first) != 64 {
		t.Fatalf("checksum length = %d, want 64 hex chars", len(first))
	}
	if first != payloadChecksum([]byte("abc")) {
		t.Fatalf("checksum is not deterministic")
	}
	if first == payloadChecksum([]byte("abd")) {
		t.Fatalf("different payloads share a checksum")
	}
}
