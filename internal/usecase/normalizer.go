package usecase

import (
	"strconv"

	"wallet-dashboard/internal/domain"
)

// DefaultCurrencyCodes maps ISO 4217 numeric codes to the symbols the dashboard knows.
func DefaultCurrencyCodes() map[int]domain.Currency {
	return map[int]domain.Currency{
		368: domain.CurrencyIQD,
		840: domain.CurrencyUSD,
	}
}

// Normalizer derives the amount and currency fields of transaction records.
type Normalizer struct {
	codes map[int]domain.Currency
}

// NewNormalizer creates a normalizer using codes, or DefaultCurrencyCodes when codes is empty.
func NewNormalizer(codes map[int]domain.Currency) *Normalizer {
	if len(codes) == 0 {
		codes = DefaultCurrencyCodes()
	}
	return &Normalizer{codes: codes}
}

// Symbol maps a numeric code to its symbol. Unmapped codes come back as their
// decimal text with ok == false.
func (n *Normalizer) Symbol(code int) (domain.Currency, bool) {
	if c, ok := n.codes[code]; ok {
		return c, true
	}
	return domain.Currency(strconv.Itoa(code)), false
}

// NormalizeRecord returns a copy of rec with Amount and Currency set.
// The bill_* fields win over the txn_* fields when both are populated.
func (n *Normalizer) NormalizeRecord(rec domain.TransactionRecord) (domain.TransactionRecord, bool) {
	if rec.BillAmount.Valid {
		rec.Amount = rec.BillAmount
	} else {
		rec.Amount = rec.TxnAmount
	}

	code := rec.BillCurrency
	if !code.Valid {
		code = rec.TxnCurrency
	}
	mapped := true
	if code.Valid {
		rec.Currency, mapped = n.Symbol(code.Code)
	} else {
		rec.Currency = ""
	}
	rec.Normalized = true
	return rec, mapped
}

// Normalize returns a new table whose records carry the derived amount and
// currency columns. No record is dropped and the input table is left untouched.
func (n *Normalizer) Normalize(table *domain.TransactionTable) *domain.TransactionTable {
	out := &domain.TransactionTable{
		Dataset: table.Dataset,
		Columns: append([]string(nil), table.Columns...),
		Records: make([]domain.TransactionRecord, len(table.Records)),
		AsOf:    table.AsOf,
		Issues:  append([]domain.RowIssue(nil), table.Issues...),
	}
	for _, derived := range []string{domain.ColumnAmount, domain.ColumnCurrency} {
		if !out.HasColumn(derived) {
			out.Columns = append(out.Columns, derived)
		}
	}

	for i, rec := range table.Records {
		normalized, mapped := n.NormalizeRecord(rec)
		if !mapped {
			out.Issues = append(out.Issues, domain.RowIssue{
				Line: rec.Line,
				Err:  &domain.CurrencyCodeError{Line: rec.Line, Code: string(normalized.Currency)},
			})
		}
		out.Records[i] = normalized
	}
	return out
}
