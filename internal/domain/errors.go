package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable is returned when a snapshot file is missing, unreadable or not valid CSV.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMalformedRecord is returned when a required field is missing or not numeric.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnparseableDate marks a row whose date could not be parsed. Non-fatal.
	ErrUnparseableDate = errors.New("unparseable date")

	// ErrUnknownCurrencyCode marks a row whose currency code has no symbol. Non-fatal.
	ErrUnknownCurrencyCode = errors.New("unknown currency code")

	// ErrUnknownDimension is returned when a group-by names a column the table does not have.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrInvalidPredicates is returned for filter predicates that cannot match anything by construction.
	ErrInvalidPredicates = errors.New("invalid predicates")
)

// RecordError describes a malformed field in a snapshot file.
type RecordError struct {
	Dataset Dataset
	Line    int
	Field   string
	Value   string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: column %q: %v", e.Dataset, e.Field, e.Err)
	}
	return fmt.Sprintf("%s line %d: field %q value %q: %v", e.Dataset, e.Line, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}

// IsDataUnavailable reports whether the error means the source could not be read.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

// IsClientError reports whether the error was caused by caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPredicates) || errors.Is(err, ErrUnknownDimension)
}

// CurrencyCodeError records a currency code that has no symbol.
type CurrencyCodeError struct {
	Line int
	Code string
}

func (e *CurrencyCodeError) Error() string {
	return fmt.Sprintf("line %d: %v: %s", e.Line, ErrUnknownCurrencyCode, e.Code)
}

func (e *CurrencyCodeError) Unwrap() error {
	return ErrUnknownCurrencyCode
}
