package usecase

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"wallet-dashboard/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// DefaultCurrencies are the currencies of the fixed currency-split views.
func DefaultCurrencies() []domain.Currency {
	return []domain.Currency{domain.CurrencyIQD, domain.CurrencyUSD}
}

// Aggregator turns normalized transaction records into counts and sums.
// All methods are pure; the input records are never modified.
type Aggregator struct {
	rule       domain.RejectionRule
	currencies []domain.Currency
}

// NewAggregator creates an aggregator. An empty rule means RejectNotApproved
// and empty currencies means DefaultCurrencies.
func NewAggregator(rule domain.RejectionRule, currencies []domain.Currency) *Aggregator {
	if rule == "" {
		rule = domain.RejectNotApproved
	}
	if len(currencies) == 0 {
		currencies = DefaultCurrencies()
	}
	return &Aggregator{rule: rule, currencies: currencies}
}

// Currencies returns the fixed currencies of the split views.
func (a *Aggregator) Currencies() []domain.Currency {
	return append([]domain.Currency(nil), a.currencies...)
}

func (a *Aggregator) isRejected(rec domain.TransactionRecord) bool {
	if a.rule == domain.RejectDeclinedOnly {
		return rec.Status == domain.StatusDeclined
	}
	return !rec.IsApproved()
}

// SummaryCounts partitions records into approved and rejected.
func (a *Aggregator) SummaryCounts(records []domain.TransactionRecord) domain.SummaryCounts {
	var c domain.SummaryCounts
	for _, rec := range records {
		c.Total++
		switch {
		case rec.IsApproved():
			c.Approved++
		case a.isRejected(rec):
			c.Rejected++
		}
	}
	return c
}

// Stats computes counts, approved/rejected amount sums and the approval
// percentage of records. Null amounts contribute nothing to the sums.
func (a *Aggregator) Stats(records []domain.TransactionRecord) domain.CurrencyStats {
	s := domain.CurrencyStats{
		ApprovedAmount: decimal.Zero,
		RejectedAmount: decimal.Zero,
	}
	for _, rec := range records {
		s.Total++
		switch {
		case rec.IsApproved():
			s.Approved++
			if rec.Amount.Valid {
				s.ApprovedAmount = s.ApprovedAmount.Add(rec.Amount.Decimal)
			}
		case a.isRejected(rec):
			s.Rejected++
			if rec.Amount.Valid {
				s.RejectedAmount = s.RejectedAmount.Add(rec.Amount.Decimal)
			}
		}
	}
	s.ApprovalPercentage = ApprovalPercentage(s.Approved, s.Total)
	return s
}

// ApprovalPercentage is approved / total * 100 rounded to two places, or zero when total is zero.
func ApprovalPercentage(approved, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(approved)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
}

func (a *Aggregator) byCurrency(records []domain.TransactionRecord) map[domain.Currency][]domain.TransactionRecord {
	parts := make(map[domain.Currency][]domain.TransactionRecord, len(a.currencies))
	for _, c := range a.currencies {
		parts[c] = nil
	}
	for _, rec := range records {
		if _, fixed := parts[rec.Currency]; fixed {
			parts[rec.Currency] = append(parts[rec.Currency], rec)
		}
	}
	return parts
}

// CurrencySplit computes Stats for each fixed currency. Every fixed currency
// is present; records in any other currency are left out.
func (a *Aggregator) CurrencySplit(records []domain.TransactionRecord) map[domain.Currency]domain.CurrencyStats {
	out := make(map[domain.Currency]domain.CurrencyStats, len(a.currencies))
	for c, part := range a.byCurrency(records) {
		out[c] = a.Stats(part)
	}
	return out
}

// TypeSplit is CurrencySplit further grouped by transaction type.
func (a *Aggregator) TypeSplit(records []domain.TransactionRecord) map[domain.Currency]map[domain.TransactionType]domain.CurrencyStats {
	out := make(map[domain.Currency]map[domain.TransactionType]domain.CurrencyStats, len(a.currencies))
	for c, part := range a.byCurrency(records) {
		groups := make(map[domain.TransactionType][]domain.TransactionRecord)
		for _, rec := range part {
			groups[rec.Type] = append(groups[rec.Type], rec)
		}
		leaves := make(map[domain.TransactionType]domain.CurrencyStats, len(groups))
		for t, g := range groups {
			leaves[t] = a.Stats(g)
		}
		out[c] = leaves
	}
	return out
}

// LoadSplit is CurrencySplit restricted to wcredit (balance load) records.
func (a *Aggregator) LoadSplit(records []domain.TransactionRecord) map[domain.Currency]domain.CurrencyStats {
	return a.CurrencySplit(ByType(records, domain.TransactionTypeWCredit))
}

// Unpartitioned counts the records whose currency is not one of the fixed currencies.
func (a *Aggregator) Unpartitioned(records []domain.TransactionRecord) int {
	n := 0
	for _, rec := range records {
		fixed := false
		for _, c := range a.currencies {
			if rec.Currency == c {
				fixed = true
				break
			}
		}
		if !fixed {
			n++
		}
	}
	return n
}

// ByType returns the records of one transaction type.
func ByType(records []domain.TransactionRecord, t domain.TransactionType) []domain.TransactionRecord {
	var out []domain.TransactionRecord
	for _, rec := range records {
		if rec.Type == t {
			out = append(out, rec)
		}
	}
	return out
}

// GroupedBreakdown counts records and sums their amounts per unique combination
// of the given columns. Groups appear in the order their first record appears.
func (a *Aggregator) GroupedBreakdown(table *domain.TransactionTable, dimensions []string) (*domain.GroupedBreakdown, error) {
	for _, d := range dimensions {
		if !table.HasColumn(d) && d != domain.ColumnAmount && d != domain.ColumnCurrency {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDimension, d)
		}
	}

	out := &domain.GroupedBreakdown{
		Dimensions: append([]string(nil), dimensions...),
		Rows:       make([]domain.GroupRow, 0),
	}
	index := make(map[string]int)
	for _, rec := range table.Records {
		keys := make([]string, len(dimensions))
		for i, d := range dimensions {
			keys[i], _ = rec.Field(d)
		}
		id := strings.Join(keys, "\x1f")
		i, ok := index[id]
		if !ok {
			i = len(out.Rows)
			index[id] = i
			out.Rows = append(out.Rows, domain.GroupRow{Keys: keys, Amount: decimal.Zero})
		}
		out.Rows[i].Count++
		if rec.Amount.Valid {
			out.Rows[i].Amount = out.Rows[i].Amount.Add(rec.Amount.Decimal)
		}
	}
	return out, nil
}

// LifecycleBucket is the label an event is tallied under: the operation when it
// contains special (case-insensitive), otherwise the new state when present,
// otherwise the operation. Labels are capitalized.
func LifecycleBucket(ev domain.LifecycleEvent, special string) string {
	if special != "" && strings.Contains(strings.ToLower(ev.Operation), strings.ToLower(special)) {
		return Capitalize(ev.Operation)
	}
	if ev.HasNewState {
		return Capitalize(ev.NewState)
	}
	return Capitalize(ev.Operation)
}

// LifecycleTally adds up event counts per bucket. Known states start at zero;
// buckets outside knownStates are added as they are seen.
func LifecycleTally(events []domain.LifecycleEvent, knownStates []string, special string) map[string]int64 {
	tally := make(map[string]int64, len(knownStates)+len(events))
	for _, s := range knownStates {
		tally[Capitalize(s)] = 0
	}
	for _, ev := range events {
		tally[LifecycleBucket(ev, special)] += ev.Count
	}
	return tally
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// TransactionStats computes every aggregate the dashboard shows for a normalized table.
// dimensions may be empty, in which case no breakdown is computed.
func (a *Aggregator) TransactionStats(table *domain.TransactionTable, dimensions []string) (*domain.TransactionStats, error) {
	records := table.Records
	loads := ByType(records, domain.TransactionTypeWCredit)
	stats := &domain.TransactionStats{
		Summary:       a.SummaryCounts(records),
		Overall:       a.Stats(records),
		Loads:         a.SummaryCounts(loads),
		Currencies:    a.Currencies(),
		CurrencySplit: a.CurrencySplit(records),
		LoadSplit:     a.CurrencySplit(loads),
		TypeSplit:     a.TypeSplit(records),
		Unpartitioned: a.Unpartitioned(records),
	}
	if len(dimensions) > 0 {
		breakdown, err := a.GroupedBreakdown(table, dimensions)
		if err != nil {
			return nil, err
		}
		stats.Breakdown = breakdown
	}
	return stats, nil
}
