package models

import "time"

// Stage is the lifecycle stage of a bid, derived from its free-text status.
type Stage string

const (
	StageNA  Stage = "NA"
	StageCOD Stage = "COD"
	StagePPA Stage = "PPA"
	StageLOA Stage = "LOA"
	StageERA Stage = "e-RA"
)

type BidRecord struct {
	ID               string     `json:"id"`
	AuthorityName    string     `json:"authority_name"`
	AuthorityLevel   string     `json:"authority_level"`
	TenderCapacityMw *float64   `json:"tender_capacity_mw,omitempty"`
	Category         string     `json:"category"`
	Type             string     `json:"type"`
	Connectivity     string     `json:"connectivity"`
	RfsNo            string     `json:"rfs_no"`
	RfsDate          *time.Time `json:"rfs_date,omitempty"`
	RfsFinancialYear string     `json:"rfs_financial_year"`
	EraDate          *time.Time `json:"era_date,omitempty"`
	EraFinancialYear string     `json:"era_financial_year"`
	Company          string     `json:"company"`
	GroupCompany     string     `json:"group_company"`
	WonCapacityMw    *float64   `json:"won_capacity_mw,omitempty"`
	FinalTariff      *float64   `json:"final_tariff,omitempty"`
	InitialTariff    *float64   `json:"initial_tariff,omitempty"`
	SignedPpaMw      *float64   `json:"signed_ppa_mw,omitempty"`
	BidCapacityMw    *float64   `json:"bid_capacity_mw,omitempty"`
	BiddingResult    string     `json:"bidding_result"`
	AnySuccess       *bool      `json:"any_success,omitempty"`
	StatusRaw        string     `json:"status_raw"`
	Stage            Stage      `json:"stage"`
	Remarks          string     `json:"remarks"`
}
