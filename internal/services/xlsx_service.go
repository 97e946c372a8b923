package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type XlsxService struct{}

func NewXlsxService() (*XlsxService, error) {
	return &XlsxService{}, nil
}

// ExtractTable reads the first sheet of a workbook into a header row plus
// data rows. The header is the first row with at least two non-empty cells,
// which skips title and note rows above the real table.
func (s *XlsxService) ExtractTable(content []byte) (TableData, error) {
	if s == nil {
		return TableData{}, errors.New("xlsx service is nil")
	}
	if len(content) == 0 {
		return TableData{}, errors.New("workbook bytes are empty")
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return TableData{}, fmt.Errorf("open workbook: %w", err)
	}

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		if closeErr := workbook.Close(); closeErr != nil {
			return TableData{}, fmt.Errorf("close workbook: %w", closeErr)
		}
		return TableData{}, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		if closeErr := workbook.Close(); closeErr != nil {
			return TableData{}, fmt.Errorf("close workbook: %w", closeErr)
		}
		return TableData{}, fmt.Errorf("get rows for %s: %w", sheets[0], err)
	}

	if closeErr := workbook.Close(); closeErr != nil {
		return TableData{}, fmt.Errorf("close workbook: %w", closeErr)
	}

	headerIndex, headerRow := findHeaderRow(rows)
	if headerRow == nil {
		return TableData{}, errors.New("no header row found in sheet")
	}

	dataRows := make([][]string, 0, len(rows))
	for _, row := range rows[headerIndex+1:] {
		normalized := normalizeRow(row, len(headerRow))
		if rowIsEmpty(normalized) {
			continue
		}
		dataRows = append(dataRows, normalized)
	}

	return TableData{Name: sheets[0], Headers: headerRow, Rows: dataRows}, nil
}

func findHeaderRow(rows [][]string) (int, []string) {
	for index, row := range rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return index, row
		}
	}

	return 0, nil
}

func normalizeRow(row []string, length int) []string {
	if len(row) >= length {
		return row
	}
	normalized := make([]string, length)
	copy(normalized, row)
	return normalized
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
