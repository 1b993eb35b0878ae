package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RejectionRule decides which non-approved statuses count as rejected.
type RejectionRule string

const (
	// RejectNotApproved counts every status other than "Approved" as rejected.
	RejectNotApproved RejectionRule = "not_approved"
	// RejectDeclinedOnly counts only "Declined" as rejected; other statuses fall in neither bucket.
	RejectDeclinedOnly RejectionRule = "declined_only"
)

// SummaryCounts partitions a record set by approval.
type SummaryCounts struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// CurrencyStats holds counts and amount sums for one partition of transactions.
type CurrencyStats struct {
	Total              int             `json:"total"`
	Approved           int             `json:"approved"`
	Rejected           int             `json:"rejected"`
	ApprovedAmount     decimal.Decimal `json:"approved_amount"`
	RejectedAmount     decimal.Decimal `json:"rejected_amount"`
	ApprovalPercentage decimal.Decimal `json:"approval_percentage"`
}

// GroupRow is one group of a multi-key group-by.
type GroupRow struct {
	Keys   []string        `json:"keys"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupedBreakdown is the ordered result of a group-by over the given dimensions.
type GroupedBreakdown struct {
	Dimensions []string   `json:"dimensions"`
	Rows       []GroupRow `json:"rows"`
}

// TransactionStats is everything the dashboard shows about one transaction table.
type TransactionStats struct {
	Summary       SummaryCounts                                  `json:"summary"`
	Overall       CurrencyStats                                  `json:"overall"`
	Loads         SummaryCounts                                  `json:"loads"`
	Currencies    []Currency                                     `json:"currencies"`
	CurrencySplit map[Currency]CurrencyStats                     `json:"currency_split"`
	LoadSplit     map[Currency]CurrencyStats                     `json:"load_split"`
	TypeSplit     map[Currency]map[TransactionType]CurrencyStats `json:"type_split"`
	Breakdown     *GroupedBreakdown                              `json:"breakdown,omitempty"`
	Unpartitioned int                                            `json:"unpartitioned"`
}

// TransactionSection is the rendered state of one transaction dataset.
type TransactionSection struct {
	Dataset Dataset           `json:"dataset"`
	AsOf    time.Time         `json:"as_of"`
	Stats   *TransactionStats `json:"stats,omitempty"`
	Notices []string          `json:"notices,omitempty"`
	Err     string            `json:"error,omitempty"`
}

// Tile is one coloured counter.
type Tile struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
	Color string `json:"color,omitempty"`
}

// StatusSection is the rendered state of an inception status dataset.
type StatusSection struct {
	Dataset    Dataset   `json:"dataset"`
	AsOf       time.Time `json:"as_of"`
	Tiles      []Tile    `json:"tiles"`
	Total      int64     `json:"total"`
	TotalColor string    `json:"total_color,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// LifecycleSection is the rendered state of a yesterday lifecycle dataset.
type LifecycleSection struct {
	Dataset    Dataset   `json:"dataset"`
	AsOf       time.Time `json:"as_of"`
	Tiles      []Tile    `json:"tiles"`
	Total      int64     `json:"total"`
	TotalColor string    `json:"total_color,omitempty"`
	Err        string    `json:"error,omitempty"`
}

// DomainOverview groups the inception status and yesterday lifecycle views of cardholders or cards.
type DomainOverview struct {
	Inception StatusSection    `json:"inception"`
	Yesterday LifecycleSection `json:"yesterday"`
}

// Overview is the whole dashboard.
type Overview struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Cardholders DomainOverview     `json:"cardholders"`
	Cards       DomainOverview     `json:"cards"`
	Inception   TransactionSection `json:"transaction_inception"`
	Yesterday   TransactionSection `json:"transaction_yesterday"`
}

// FilterResult is the filtered inception subset with its statistics.
type FilterResult struct {
	Predicates Predicates        `json:"predicates"`
	Table      *TransactionTable `json:"table"`
	Stats      TransactionStats  `json:"stats"`
}

// FilterOptions lists the values offered by the filter form.
type FilterOptions struct {
	Types      []TransactionType `json:"types"`
	Statuses   []string          `json:"statuses"`
	Currencies []Currency        `json:"currencies"`
	MinDate    *time.Time        `json:"min_date,omitempty"`
	MaxDate    *time.Time        `json:"max_date,omitempty"`
}
