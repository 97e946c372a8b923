package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type ArchiveService struct {
	xlsxService WorkbookReader
	logService  LogWriter
}

func NewArchiveService(xlsxService WorkbookReader, logService LogWriter) (*ArchiveService, error) {
	if xlsxService == nil {
		return nil, errors.New("xlsx service is nil")
	}
	if logService == nil {
		return nil, errors.New("log service is nil")
	}

	return &ArchiveService{
		xlsxService: xlsxService,
		logService:  logService,
	}, nil
}

// ExtractTables walks a zip archive and extracts one table per tabular entry:
// workbooks go through the xlsx service, csv/tsv/txt entries through the
// delimited parser. Other entries and macOS resource forks are skipped.
func (s *ArchiveService) ExtractTables(ctx context.Context, zipBytes []byte, eventID *string) ([]TableData, error) {
	if s == nil {
		return nil, errors.New("archive service is nil")
	}
	if s.xlsxService == nil {
		return nil, errors.New("xlsx service is nil")
	}
	if s.logService == nil {
		return nil, errors.New("log service is nil")
	}
	if len(zipBytes) == 0 {
		return nil, errors.New("zip bytes are empty")
	}

	zipReader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		failMsg := fmt.Sprintf("open zip: %v", err)
		_ = s.logService.CreateLog(ctx, eventID, LogActionArchiveExtract, LogOutcomeFail, &failMsg)
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var tables []TableData
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(file.Name, "__MACOSX") {
			continue
		}

		table, ok, err := s.extractEntry(file)
		if err != nil {
			failMsg := fmt.Sprintf("extract entry=%s: %v", file.Name, err)
			_ = s.logService.CreateLog(ctx, eventID, LogActionArchiveExtract, LogOutcomeFail, &failMsg)
			return nil, err
		}
		if ok {
			tables = append(tables, table)
		}
	}

	if len(tables) == 0 {
		failMsg := "no tabular entries found in zip"
		_ = s.logService.CreateLog(ctx, eventID, LogActionArchiveExtract, LogOutcomeFail, &failMsg)
		return nil, errors.New("no tabular entries found in zip")
	}

	successMsg := fmt.Sprintf("extracted tables=%d", len(tables))
	_ = s.logService.CreateLog(ctx, eventID, LogActionArchiveExtract, LogOutcomeSuccess, &successMsg)

	return tables, nil
}

func (s *ArchiveService) extractEntry(file *zip.File) (TableData, bool, error) {
	name := strings.ToLower(file.Name)
	isWorkbook := strings.HasSuffix(name, ".xlsx")
	isText := strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
	if !isWorkbook && !isText {
		return TableData{}, false, nil
	}

	content, err := readZipEntry(file)
	if err != nil {
		return TableData{}, false, err
	}

	if isWorkbook {
		table, err := s.xlsxService.ExtractTable(content)
		if err != nil {
			return TableData{}, false, err
		}
		table.Name = file.Name
		return table, true, nil
	}

	headers, rows := parseDelimited(string(content))
	return TableData{Name: file.Name, Headers: headers, Rows: rows}, true, nil
}

func readZipEntry(file *zip.File) ([]byte, error) {
	if file == nil {
		return nil, errors.New("zip entry is nil")
	}

	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry: %w", err)
	}

	content, readErr := io.ReadAll(reader)
	closeErr := reader.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read zip entry: %w", readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close zip entry: %w", closeErr)
	}

	return content, nil
}
