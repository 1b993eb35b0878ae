package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the value of the transaction_type column (e.g. "wcredit", "purchase").
type TransactionType string

// TransactionTypeWCredit is the balance-load transaction type tracked as "Loads".
const TransactionTypeWCredit TransactionType = "wcredit"

// Currency is a normalized currency symbol ("IQD", "USD") or an unmapped code passed through as text.
type Currency string

const (
	CurrencyIQD Currency = "IQD"
	CurrencyUSD Currency = "USD"
)

// StatusApproved is the only transaction_status value counted as approved.
const StatusApproved = "Approved"

// StatusDeclined is the status counted as rejected under RejectDeclinedOnly.
const StatusDeclined = "Declined"

// Column names of the transaction snapshots.
const (
	ColumnTransactionType   = "transaction_type"
	ColumnTransactionStatus = "transaction_status"
	ColumnBillAmount        = "bill_amt"
	ColumnTxnAmount         = "txn_amt"
	ColumnBillCurrency      = "bill_curr"
	ColumnTxnCurrency       = "txn_curr"
	ColumnDate              = "date"
	ColumnNetworkName       = "networkname"
	ColumnPOSEntryMode      = "pos_entry_mode"
	ColumnCardPresent       = "card_present"
	ColumnECI               = "eci"

	// Derived by the normalizer.
	ColumnAmount   = "amount"
	ColumnCurrency = "currency"
)

// CurrencyCode is a nullable ISO 4217 numeric code.
type CurrencyCode struct {
	Code  int
	Valid bool
}

// TransactionRecord is one row of a transaction snapshot.
type TransactionRecord struct {
	Line   int             `json:"-"`
	Type   TransactionType `json:"transaction_type"`
	Status string          `json:"transaction_status"`

	BillAmount   decimal.NullDecimal `json:"bill_amt"`
	TxnAmount    decimal.NullDecimal `json:"txn_amt"`
	BillCurrency CurrencyCode        `json:"-"`
	TxnCurrency  CurrencyCode        `json:"-"`

	// Date is only meaningful when DateValid is true; unparseable dates leave it zero.
	Date      time.Time `json:"date"`
	DateValid bool      `json:"-"`

	NetworkName  string `json:"networkname"`
	POSEntryMode string `json:"pos_entry_mode"`
	CardPresent  string `json:"card_present"`
	ECI          string `json:"eci"`

	// Raw holds every source column value keyed by header name.
	Raw map[string]string `json:"-"`

	// Normalized fields, populated by the normalizer.
	Amount     decimal.NullDecimal `json:"amount"`
	Currency   Currency            `json:"currency"`
	Normalized bool                `json:"-"`
}

// IsApproved reports whether the record's status is exactly "Approved".
func (r TransactionRecord) IsApproved() bool {
	return r.Status == StatusApproved
}

// Field returns the value of a named column as text. Derived columns are
// resolved from the normalized fields; everything else comes from Raw.
func (r TransactionRecord) Field(name string) (string, bool) {
	switch name {
	case ColumnAmount:
		if !r.Amount.Valid {
			return "", true
		}
		return r.Amount.Decimal.String(), true
	case ColumnCurrency:
		return string(r.Currency), true
	case ColumnTransactionType:
		return string(r.Type), true
	case ColumnTransactionStatus:
		return r.Status, true
	}
	v, ok := r.Raw[name]
	return v, ok
}

// RowIssue is a non-fatal problem attached to one source line.
type RowIssue struct {
	Line int   `json:"line"`
	Err  error `json:"-"`
}

func (i RowIssue) Error() string {
	return i.Err.Error()
}

// TransactionTable is a loaded transaction snapshot.
type TransactionTable struct {
	Dataset Dataset             `json:"dataset"`
	Columns []string            `json:"columns"`
	Records []TransactionRecord `json:"-"`
	AsOf    time.Time           `json:"as_of"`
	Issues  []RowIssue          `json:"-"`
}

// HasColumn reports whether name is a source or derived column of the table.
func (t *TransactionTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
