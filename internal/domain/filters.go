package domain

import (
	"fmt"
	"time"
)

// Predicates is an optional conjunction of filters over transaction records.
// Empty strings and nil dates are absent predicates.
type Predicates struct {
	TransactionType TransactionType `json:"transaction_type,omitempty"`
	Status          string          `json:"transaction_status,omitempty"`
	Currency        Currency        `json:"currency,omitempty"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
}

// HasDateBounds reports whether any date predicate is active.
func (p Predicates) HasDateBounds() bool {
	return p.StartDate != nil || p.EndDate != nil
}

// IsEmpty reports whether no predicate is set.
func (p Predicates) IsEmpty() bool {
	return p.TransactionType == "" && p.Status == "" && p.Currency == "" && !p.HasDateBounds()
}

// Validate rejects a start date after the end date.
func (p Predicates) Validate() error {
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidPredicates,
			p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))
	}
	return nil
}
