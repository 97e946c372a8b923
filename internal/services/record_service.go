package services

import (
	"regexp"
	"strconv"
	"strings"

	"bidback/internal/models"
)

// missingValue is the display placeholder for string fields with no value.
// Numeric, date and boolean fields stay nil instead.
const missingValue = "—"

const authorityHeader = "bidding authority"

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

type RecordService struct{}

func NewRecordService() (*RecordService, error) {
	return &RecordService{}, nil
}

// BuildRecords turns a header row plus data rows into bid records. Rows with
// no authority, no tender reference and no company are dropped; everything
// else degrades per field instead of failing.
func (s *RecordService) BuildRecords(headers []string, rows [][]string) []models.BidRecord {
	if s == nil {
		return nil
	}

	columns := resolveColumns(headers)
	records := make([]models.BidRecord, 0, len(rows))
	for i, row := range rows {
		if record, ok := buildRecord(columns, row, i); ok {
			records = append(records, record)
		}
	}

	return records
}

// normalizeHeader lowers the text and collapses every non-alphanumeric run
// into a single space, so "RFS No." and "rfs  no" resolve identically.
func normalizeHeader(header string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(strings.ToLower(header), " "))
}

type columnIndex struct {
	byName map[string]int
	// authority holds every column position whose header normalizes to
	// "bidding authority", left to right. The sheet uses the same header
	// twice, first for the authority's name and then for its level.
	authority []int
}

func resolveColumns(headers []string) columnIndex {
	index := columnIndex{byName: make(map[string]int, len(headers))}
	for i, header := range headers {
		name := normalizeHeader(header)
		if name == authorityHeader {
			index.authority = append(index.authority, i)
		}
		if _, seen := index.byName[name]; !seen {
			index.byName[name] = i
		}
	}
	return index
}

func (c columnIndex) cell(row []string, name string) string {
	i, ok := c.byName[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (c columnIndex) authorityCell(row []string, position int) string {
	if position >= len(c.authority) {
		return ""
	}
	i := c.authority[position]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func buildRecord(columns columnIndex, row []string, rowIndex int) (models.BidRecord, bool) {
	authorityName := cleanText(columns.authorityCell(row, 0))
	authorityLevel := cleanText(columns.authorityCell(row, 1))
	rfsNo := cleanText(columns.cell(row, "rfs no"))
	company := cleanText(columns.cell(row, "company"))

	if authorityName == "" && rfsNo == "" && company == "" {
		return models.BidRecord{}, false
	}

	groupCompany := cleanText(columns.cell(row, "group company"))
	if groupCompany == "" {
		groupCompany = company
	}

	statusRaw := cleanText(columns.cell(row, "status e ra loa ppa cod"))

	record := models.BidRecord{
		ID:               recordID(authorityName, rfsNo, company, rowIndex),
		AuthorityName:    authorityName,
		AuthorityLevel:   orPlaceholder(authorityLevel),
		TenderCapacityMw: parseNumber(columns.cell(row, "tender capacity")),
		Category:         orPlaceholder(cleanText(columns.cell(row, "category"))),
		Type:             orPlaceholder(cleanText(columns.cell(row, "type"))),
		Connectivity:     orPlaceholder(cleanText(columns.cell(row, "connectivity"))),
		RfsNo:            orPlaceholder(rfsNo),
		RfsDate:          parseFlexibleDate(columns.cell(row, "rfs date")),
		RfsFinancialYear: cleanText(columns.cell(row, "rfs financial year")),
		EraDate:          parseFlexibleDate(columns.cell(row, "era")),
		EraFinancialYear: cleanText(columns.cell(row, "financial year")),
		Company:          company,
		GroupCompany:     groupCompany,
		WonCapacityMw:    parseNumber(columns.cell(row, "won capacity")),
		FinalTariff:      parseNumber(columns.cell(row, "final tariff")),
		InitialTariff:    parseNumber(columns.cell(row, "initial tariff")),
		SignedPpaMw:      parseNumber(columns.cell(row, "signed ppa cap mw")),
		BidCapacityMw:    parseNumber(columns.cell(row, "bid capacity")),
		BiddingResult:    orPlaceholder(cleanText(columns.cell(row, "bidding result"))),
		AnySuccess:       parseTriState(columns.cell(row, "any success")),
		StatusRaw:        orPlaceholder(statusRaw),
		Stage:            classifyStage(statusRaw),
		Remarks:          cleanText(columns.cell(row, "remarks")),
	}

	return record, true
}

// classifyStage maps free-text status onto a stage. The contains checks run
// in a fixed order and the first match wins, so "LOA then COD" is COD.
func classifyStage(statusRaw string) models.Stage {
	status := strings.ToLower(cleanText(statusRaw))
	switch {
	case status == "" || status == "not applicable":
		return models.StageNA
	case strings.Contains(status, "cod"):
		return models.StageCOD
	case strings.Contains(status, "ppa"):
		return models.StagePPA
	case strings.Contains(status, "loa"):
		return models.StageLOA
	case strings.Contains(status, "e-ra"), strings.Contains(status, "era"), strings.Contains(status, "e ra"):
		return models.StageERA
	default:
		return models.StageNA
	}
}

// recordID is stable for a fixed input because it embeds the row position.
func recordID(authorityName string, rfsNo string, company string, rowIndex int) string {
	return strings.Join([]string{
		orDefault(authorityName, "na"),
		orDefault(rfsNo, "na"),
		orDefault(company, "na"),
		strconv.Itoa(rowIndex),
	}, "::")
}

func orPlaceholder(value string) string {
	if value == "" {
		return missingValue
	}
	return value
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
