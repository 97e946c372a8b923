package services

import (
	"errors"
	"sort"
	"strings"

	"bidback/internal/models"
)

const topWinnersLimit = 10

type MetricsService struct {
	records RecordSource
}

func NewMetricsService(records RecordSource) (*MetricsService, error) {
	if records == nil {
		return nil, errors.New("record source is nil")
	}

	return &MetricsService{records: records}, nil
}

func (s *MetricsService) VisibleRecords(filter Filter) ([]models.BidRecord, error) {
	if s == nil {
		return nil, errors.New("metrics service is nil")
	}
	if s.records == nil {
		return nil, errors.New("record source is nil")
	}

	return filterRecords(s.records.Records(), filter), nil
}

// FilterOptions lists the distinct filter values over the full record set,
// not the filtered one, so narrowing a dropdown never empties the others.
func (s *MetricsService) FilterOptions() (FilterOptions, error) {
	if s == nil {
		return FilterOptions{}, errors.New("metrics service is nil")
	}
	if s.records == nil {
		return FilterOptions{}, errors.New("record source is nil")
	}

	records := s.records.Records()
	authorities := make([]string, 0, len(records))
	categories := make([]string, 0, len(records))
	stages := make([]string, 0, len(records))
	for _, record := range records {
		authorities = append(authorities, record.AuthorityName)
		categories = append(categories, record.Category)
		stages = append(stages, string(record.Stage))
	}

	return FilterOptions{
		Authorities: distinctSorted(authorities),
		Categories:  distinctSorted(categories),
		Stages:      distinctSorted(stages),
	}, nil
}

func (s *MetricsService) Summarize(filter Filter) (Summary, error) {
	if s == nil {
		return Summary{}, errors.New("metrics service is nil")
	}
	if s.records == nil {
		return Summary{}, errors.New("record source is nil")
	}

	return summarize(filterRecords(s.records.Records(), filter)), nil
}

func summarize(records []models.BidRecord) Summary {
	uniqueTenders, tendered := tenderedCapacity(records)
	wins, rate := winRate(records)
	bid, won := capacityTotals(records)

	return Summary{
		VisibleRows:        len(records),
		UniqueTenders:      uniqueTenders,
		TenderedCapacityMw: tendered,
		TotalBidMw:         bid,
		TotalWonMw:         won,
		SuccessCount:       wins,
		WinRatePct:         rate,
		AvgTariff:          weightedTariff(records),
		TopWinners:         topWinners(records),
		Trend:              monthlyTrend(records),
	}
}

func filterRecords(records []models.BidRecord, filter Filter) []models.BidRecord {
	visible := make([]models.BidRecord, 0, len(records))
	for _, record := range records {
		if recordMatches(record, filter) {
			visible = append(visible, record)
		}
	}
	return visible
}

func recordMatches(record models.BidRecord, filter Filter) bool {
	if filter.Authority != "" && record.AuthorityName != filter.Authority {
		return false
	}
	if filter.Category != "" && record.Category != filter.Category {
		return false
	}
	if filter.Stage != "" && string(record.Stage) != filter.Stage {
		return false
	}
	if search := cleanText(filter.Search); search != "" {
		haystack := strings.ToLower(searchHaystack(record))
		if !strings.Contains(haystack, strings.ToLower(search)) {
			return false
		}
	}
	return true
}

func searchHaystack(record models.BidRecord) string {
	return strings.Join([]string{
		record.AuthorityName,
		record.Category,
		record.Type,
		record.Connectivity,
		record.RfsNo,
		record.Company,
		record.GroupCompany,
		record.StatusRaw,
		record.BiddingResult,
		record.Remarks,
	}, "|")
}

// tenderedCapacity sums one capacity per tender reference: the first record
// in original order that carries a value speaks for its group, so multiple
// bidder rows on the same tender are not double counted.
func tenderedCapacity(records []models.BidRecord) (int, float64) {
	order := make([]string, 0)
	firstCapacity := make(map[string]*float64)
	for _, record := range records {
		if _, seen := firstCapacity[record.RfsNo]; !seen {
			order = append(order, record.RfsNo)
			firstCapacity[record.RfsNo] = nil
		}
		if firstCapacity[record.RfsNo] == nil && record.TenderCapacityMw != nil {
			firstCapacity[record.RfsNo] = record.TenderCapacityMw
		}
	}

	total := 0.0
	for _, key := range order {
		if capacity := firstCapacity[key]; capacity != nil {
			total += *capacity
		}
	}

	return len(order), total
}

func winRate(records []models.BidRecord) (int, float64) {
	if len(records) == 0 {
		return 0, 0
	}

	wins := 0
	for _, record := range records {
		if record.AnySuccess != nil && *record.AnySuccess {
			wins++
		}
	}

	return wins, float64(wins) / float64(len(records)) * 100
}

func capacityTotals(records []models.BidRecord) (float64, float64) {
	var bid, won float64
	for _, record := range records {
		if record.BidCapacityMw != nil {
			bid += *record.BidCapacityMw
		}
		if record.WonCapacityMw != nil {
			won += *record.WonCapacityMw
		}
	}
	return bid, won
}

// weightedTariff averages final tariffs weighted by won capacity. Pairs miss
// the average unless both values are present and the weight is positive; a
// zero total weight yields nil rather than a division by zero.
func weightedTariff(records []models.BidRecord) *float64 {
	var weightedSum, totalWeight float64
	for _, record := range records {
		if record.FinalTariff == nil || record.WonCapacityMw == nil {
			continue
		}
		if *record.WonCapacityMw <= 0 {
			continue
		}
		weightedSum += *record.FinalTariff * *record.WonCapacityMw
		totalWeight += *record.WonCapacityMw
	}
	if totalWeight == 0 {
		return nil
	}

	average := weightedSum / totalWeight
	return &average
}

// topWinners groups in first-appearance order before the stable sort, which
// keeps ties deterministic across runs.
func topWinners(records []models.BidRecord) []WinnerShare {
	order := make([]string, 0)
	totals := make(map[string]float64)
	for _, record := range records {
		group := record.GroupCompany
		if group == "" {
			group = record.Company
		}
		if _, seen := totals[group]; !seen {
			order = append(order, group)
			totals[group] = 0
		}
		if record.WonCapacityMw != nil {
			totals[group] += *record.WonCapacityMw
		}
	}

	winners := make([]WinnerShare, 0, len(order))
	for _, group := range order {
		if totals[group] > 0 {
			winners = append(winners, WinnerShare{GroupCompany: group, WonCapacityMw: totals[group]})
		}
	}
	sort.SliceStable(winners, func(i, j int) bool {
		return winners[i].WonCapacityMw > winners[j].WonCapacityMw
	})
	if len(winners) > topWinnersLimit {
		winners = winners[:topWinnersLimit]
	}

	return winners
}

// monthlyTrend buckets by the e-RA date's "2006-01" key. Records without a
// date land in "Unknown", which sorts after every numeric key.
func monthlyTrend(records []models.BidRecord) []TrendPoint {
	buckets := make(map[string][]models.BidRecord)
	for _, record := range records {
		key := "Unknown"
		if record.EraDate != nil {
			key = record.EraDate.Format("2006-01")
		}
		buckets[key] = append(buckets[key], record)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		group := buckets[key]
		var won float64
		for _, record := range group {
			if record.WonCapacityMw != nil {
				won += *record.WonCapacityMw
			}
		}
		avg := 0.0
		if tariff := weightedTariff(group); tariff != nil {
			avg = *tariff
		}
		points = append(points, TrendPoint{Month: key, AvgTariff: avg, WonCapacityMw: won})
	}

	return points
}

func distinctSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	distinct := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		distinct = append(distinct, value)
	}
	sort.Strings(distinct)
	return distinct
}
