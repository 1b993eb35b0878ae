package domain

import "time"

// Dataset is the logical name of one snapshot file.
type Dataset string

const (
	DatasetCardholderInception  Dataset = "cardholder_inception"
	DatasetCardholderYesterday  Dataset = "cardholder_yesterday"
	DatasetCardInception        Dataset = "card_inception"
	DatasetCardYesterday        Dataset = "card_yesterday"
	DatasetTransactionInception Dataset = "transaction_inception"
	DatasetTransactionYesterday Dataset = "transaction_yesterday"
)

// FileName is the fixed file name of the dataset inside the data directory.
func (d Dataset) FileName() string {
	return string(d) + ".csv"
}

// Columns of the status and lifecycle snapshots.
const (
	ColumnStatus    = "status"
	ColumnOperation = "operation"
	ColumnNewState  = "newstate"
	ColumnCount     = "count"
)

// StatusCount is one row of a cardholder/card inception snapshot.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatusTable is a loaded inception status snapshot.
type StatusTable struct {
	Dataset Dataset       `json:"dataset"`
	Rows    []StatusCount `json:"rows"`
	AsOf    time.Time     `json:"as_of"`
}

// Total sums the counts of all statuses.
func (t *StatusTable) Total() int64 {
	var total int64
	for _, r := range t.Rows {
		total += r.Count
	}
	return total
}

// LifecycleEvent is one (operation, newstate) row of a yesterday snapshot.
type LifecycleEvent struct {
	Operation string `json:"operation"`
	NewState  string `json:"newstate,omitempty"`
	// HasNewState is false when the newstate cell is empty.
	HasNewState bool  `json:"-"`
	Count       int64 `json:"count"`
}

// LifecycleTable is a loaded yesterday lifecycle snapshot.
type LifecycleTable struct {
	Dataset Dataset          `json:"dataset"`
	Events  []LifecycleEvent `json:"events"`
	AsOf    time.Time        `json:"as_of"`
}
