package services

import "time"

type TableData struct {
	Name    string
	Headers []string
	Rows    [][]string
}

type FetchResult struct {
	URL        string
	StatusCode int
	Body       []byte
}

type Filter struct {
	Authority string
	Category  string
	Stage     string
	Search    string
}

type FilterOptions struct {
	Authorities []string `json:"authorities"`
	Categories  []string `json:"categories"`
	Stages      []string `json:"stages"`
}

type WinnerShare struct {
	GroupCompany  string  `json:"group_company"`
	WonCapacityMw float64 `json:"won_capacity_mw"`
}

type TrendPoint struct {
	Month         string  `json:"month"`
	AvgTariff     float64 `json:"avg_tariff"`
	WonCapacityMw float64 `json:"won_capacity_mw"`
}

type Summary struct {
	VisibleRows        int           `json:"visible_rows"`
	UniqueTenders      int           `json:"unique_tenders"`
	TenderedCapacityMw float64       `json:"tendered_capacity_mw"`
	TotalBidMw         float64       `json:"total_bid_mw"`
	TotalWonMw         float64       `json:"total_won_mw"`
	SuccessCount       int           `json:"success_count"`
	WinRatePct         float64       `json:"win_rate_pct"`
	AvgTariff          *float64      `json:"avg_tariff"`
	TopWinners         []WinnerShare `json:"top_winners"`
	Trend              []TrendPoint  `json:"trend"`
}

type DatasetInfo struct {
	Records  int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
	Origin   string    `json:"source"`
}
