package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wallet-dashboard/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var datasetTitles = map[domain.Dataset]string{
	domain.DatasetCardholderInception:  "Cardholders since inception",
	domain.DatasetCardholderYesterday:  "Cardholders yesterday",
	domain.DatasetCardInception:        "Cards since inception",
	domain.DatasetCardYesterday:        "Cards yesterday",
	domain.DatasetTransactionInception: "Transactions since inception",
	domain.DatasetTransactionYesterday: "Transactions yesterday",
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"amount":  formatAmount,
		"percent": func(d decimal.Decimal) string { return d.StringFixed(2) + "%" },
		"count":   formatCount,
		"stamp":   formatStamp,
		"day":     formatDay,
		"title":   func(d domain.Dataset) string { return datasetTitles[d] },
		"share":   share,
	}).ParseFS(templatesFS, "templates/*.html")
}

// formatAmount renders d with two decimals and thousands separators.
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + group(whole) + "." + frac
}

func formatCount(v any) string {
	switch n := v.(type) {
	case int:
		return group(fmt.Sprint(n))
	case int64:
		return group(fmt.Sprint(n))
	default:
		return fmt.Sprint(v)
	}
}

func group(digits string) string {
	if len(digits) <= 3 || strings.HasPrefix(digits, "-") {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

// share is part/total as a CSS width percentage.
func share(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).StringFixed(1) + "%"
}
