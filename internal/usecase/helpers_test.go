package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"wallet-dashboard/internal/domain"
)

func amount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func code(c int) domain.CurrencyCode {
	return domain.CurrencyCode{Code: c, Valid: true}
}

// normalized builds a record as the normalizer would leave it.
func normalized(t domain.TransactionType, status, amt string, cur domain.Currency) domain.TransactionRecord {
	return domain.TransactionRecord{
		Type:       t,
		Status:     status,
		Amount:     amount(amt),
		Currency:   cur,
		Normalized: true,
		Raw: map[string]string{
			domain.ColumnTransactionType:   string(t),
			domain.ColumnTransactionStatus: status,
		},
	}
}

func dated(rec domain.TransactionRecord, day string) domain.TransactionRecord {
	d, err := time.Parse(time.DateTime, day)
	if err != nil {
		d, err = time.Parse(time.DateOnly, day)
		if err != nil {
			panic(err)
		}
	}
	rec.Date, rec.DateValid = d, true
	return rec
}

func day(s string) *time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &d
}
