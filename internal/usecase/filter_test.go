package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-dashboard/internal/domain"
	"wallet-dashboard/internal/usecase"
)

func filterRecords() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		dated(normalized("wcredit", "Approved", "100", domain.CurrencyIQD), "2024-01-01 08:00:00"),
		dated(normalized("purchase", "Declined", "50", domain.CurrencyUSD), "2024-01-02 12:00:00"),
		dated(normalized("wcredit", "Declined", "10", domain.CurrencyUSD), "2024-01-03 23:59:59"),
		normalized("wcredit", "Approved", "1", domain.CurrencyIQD), // unparseable date
	}
}

func TestApply(t *testing.T) {
	records := filterRecords()

	tests := []struct {
		name      string
		predicate domain.Predicates
		wantIdx   []int
	}{
		{name: "no predicates", predicate: domain.Predicates{}, wantIdx: []int{0, 1, 2, 3}},
		{name: "by type", predicate: domain.Predicates{TransactionType: "wcredit"}, wantIdx: []int{0, 2, 3}},
		{name: "by status", predicate: domain.Predicates{Status: "Declined"}, wantIdx: []int{1, 2}},
		{name: "by currency", predicate: domain.Predicates{Currency: domain.CurrencyUSD}, wantIdx: []int{1, 2}},
		{name: "conjunction", predicate: domain.Predicates{TransactionType: "wcredit", Currency: domain.CurrencyUSD}, wantIdx: []int{2}},
		{name: "start date drops undated rows", predicate: domain.Predicates{StartDate: day("2000-01-01")}, wantIdx: []int{0, 1, 2}},
		{name: "end date is inclusive", predicate: domain.Predicates{EndDate: day("2024-01-03")}, wantIdx: []int{0, 1, 2}},
		{name: "single day", predicate: domain.Predicates{StartDate: day("2024-01-02"), EndDate: day("2024-01-02")}, wantIdx: []int{1}},
		{name: "nothing matches", predicate: domain.Predicates{TransactionType: "refund"}, wantIdx: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.Apply(records, tt.predicate)
			want := make([]domain.TransactionRecord, 0, len(tt.wantIdx))
			for _, i := range tt.wantIdx {
				want = append(want, records[i])
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestApply_DateExclusion(t *testing.T) {
	undated := normalized("purchase", "Approved", "1", domain.CurrencyIQD)
	records := []domain.TransactionRecord{undated}

	assert.Len(t, usecase.Apply(records, domain.Predicates{}), 1)
	for _, d := range []string{"1970-01-01", "2024-06-01", "2999-12-31"} {
		assert.Empty(t, usecase.Apply(records, domain.Predicates{StartDate: day(d)}), d)
		assert.Empty(t, usecase.Apply(records, domain.Predicates{EndDate: day(d)}), d)
	}
}

func TestApply_ComparesCalendarDayInRecordZone(t *testing.T) {
	zone := time.FixedZone("AST", 3*60*60)
	rec := normalized("purchase", "Approved", "1", domain.CurrencyIQD)
	rec.Date, rec.DateValid = time.Date(2024, 1, 3, 1, 0, 0, 0, zone), true

	got := usecase.Apply([]domain.TransactionRecord{rec}, domain.Predicates{StartDate: day("2024-01-03"), EndDate: day("2024-01-03")})

	assert.Len(t, got, 1)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	records := filterRecords()
	before := append([]domain.TransactionRecord(nil), records...)

	got := usecase.Apply(records, domain.Predicates{Status: "Approved"})
	require.NotEmpty(t, got)
	got[0].Status = "changed"

	assert.Equal(t, before, records)
}

func TestApplyTable(t *testing.T) {
	table := &domain.TransactionTable{
		Dataset: domain.DatasetTransactionInception,
		Columns: []string{"transaction_type", "amount"},
		Records: filterRecords(),
		AsOf:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	}

	got := usecase.ApplyTable(table, domain.Predicates{TransactionType: "purchase"})

	assert.Equal(t, table.Columns, got.Columns)
	assert.Equal(t, table.AsOf, got.AsOf)
	assert.Len(t, got.Records, 1)
	assert.Len(t, table.Records, 4)
}

func TestOptions(t *testing.T) {
	got := usecase.Options(filterRecords())

	assert.Equal(t, []domain.TransactionType{"wcredit", "purchase"}, got.Types)
	assert.Equal(t, []string{"Approved", "Declined"}, got.Statuses)
	assert.Equal(t, []domain.Currency{domain.CurrencyIQD, domain.CurrencyUSD}, got.Currencies)
	require.NotNil(t, got.MinDate)
	require.NotNil(t, got.MaxDate)
	assert.Equal(t, "2024-01-01", got.MinDate.Format(time.DateOnly))
	assert.Equal(t, "2024-01-03", got.MaxDate.Format(time.DateOnly))
}

func TestOptions_NoDates(t *testing.T) {
	got := usecase.Options(nil)

	assert.Empty(t, got.Types)
	assert.Nil(t, got.MinDate)
	assert.Nil(t, got.MaxDate)
}

func TestPredicates_Validate(t *testing.T) {
	assert.NoError(t, domain.Predicates{}.Validate())
	assert.NoError(t, domain.Predicates{StartDate: day("2024-01-01"), EndDate: day("2024-01-01")}.Validate())
	assert.ErrorIs(t, domain.Predicates{StartDate: day("2024-01-02"), EndDate: day("2024-01-01")}.Validate(), domain.ErrInvalidPredicates)
}
