package web

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"wallet-dashboard/internal/domain"
)

// filterForm echoes the raw filter query back into the form.
type filterForm struct {
	Type     string
	Status   string
	Currency string
	From     string
	To       string
}

func readFilterForm(q url.Values) filterForm {
	return filterForm{
		Type:     strings.TrimSpace(q.Get("type")),
		Status:   strings.TrimSpace(q.Get("status")),
		Currency: strings.TrimSpace(q.Get("currency")),
		From:     strings.TrimSpace(q.Get("from")),
		To:       strings.TrimSpace(q.Get("to")),
	}
}

// Predicates parses the form. Dates use the YYYY-MM-DD layout.
func (f filterForm) Predicates() (domain.Predicates, error) {
	p := domain.Predicates{
		TransactionType: domain.TransactionType(f.Type),
		Status:          f.Status,
		Currency:        domain.Currency(f.Currency),
	}
	var err error
	if p.StartDate, err = parseDay("from", f.From); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDay("to", f.To); err != nil {
		return p, err
	}
	return p, p.Validate()
}

// Query encodes the non-empty fields for export links.
func (f filterForm) Query() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"type":     f.Type,
		"status":   f.Status,
		"currency": f.Currency,
		"from":     f.From,
		"to":       f.To,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

func parseDay(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s date %q must be YYYY-MM-DD", domain.ErrInvalidPredicates, name, value)
	}
	return &t, nil
}
