package usecase

import (
	"time"

	"wallet-dashboard/internal/domain"
)

// Apply returns the records matching every predicate that is set. Date bounds
// are inclusive at day granularity; a record without a valid date never
// satisfies a date bound. The result is a new slice.
func Apply(records []domain.TransactionRecord, p domain.Predicates) []domain.TransactionRecord {
	filtered := make([]domain.TransactionRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, p) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

func matches(rec domain.TransactionRecord, p domain.Predicates) bool {
	if p.TransactionType != "" && rec.Type != p.TransactionType {
		return false
	}
	if p.Status != "" && rec.Status != p.Status {
		return false
	}
	if p.Currency != "" && rec.Currency != p.Currency {
		return false
	}
	if p.HasDateBounds() && !rec.DateValid {
		return false
	}
	day := dayOf(rec.Date)
	if p.StartDate != nil && day.Before(dayOf(*p.StartDate)) {
		return false
	}
	if p.EndDate != nil && day.After(dayOf(*p.EndDate)) {
		return false
	}
	return true
}

// dayOf drops the clock part of t, keeping the calendar date in t's own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyTable filters a table, keeping its columns and as-of timestamp.
func ApplyTable(table *domain.TransactionTable, p domain.Predicates) *domain.TransactionTable {
	return &domain.TransactionTable{
		Dataset: table.Dataset,
		Columns: append([]string(nil), table.Columns...),
		Records: Apply(table.Records, p),
		AsOf:    table.AsOf,
	}
}

// Options lists the distinct types, statuses and currencies in first-appearance
// order together with the earliest and latest valid dates.
func Options(records []domain.TransactionRecord) domain.FilterOptions {
	opts := domain.FilterOptions{
		Types:      make([]domain.TransactionType, 0),
		Statuses:   make([]string, 0),
		Currencies: make([]domain.Currency, 0),
	}
	seenType := make(map[domain.TransactionType]bool)
	seenStatus := make(map[string]bool)
	seenCurrency := make(map[domain.Currency]bool)

	for _, rec := range records {
		if rec.Type != "" && !seenType[rec.Type] {
			seenType[rec.Type] = true
			opts.Types = append(opts.Types, rec.Type)
		}
		if rec.Status != "" && !seenStatus[rec.Status] {
			seenStatus[rec.Status] = true
			opts.Statuses = append(opts.Statuses, rec.Status)
		}
		if rec.Currency != "" && !seenCurrency[rec.Currency] {
			seenCurrency[rec.Currency] = true
			opts.Currencies = append(opts.Currencies, rec.Currency)
		}
		if !rec.DateValid {
			continue
		}
		d := rec.Date
		if opts.MinDate == nil || d.Before(*opts.MinDate) {
			opts.MinDate = &d
		}
		if opts.MaxDate == nil || d.After(*opts.MaxDate) {
			opts.MaxDate = &d
		}
	}
	return opts
}
