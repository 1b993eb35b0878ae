package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"wallet-dashboard/internal/domain"
	"wallet-dashboard/internal/usecase"
)

// LifecycleSettings controls how yesterday lifecycle events are bucketed.
type LifecycleSettings struct {
	SpecialOperation string   `yaml:"special_operation"`
	CardholderStates []string `yaml:"cardholder_states"`
	CardStates       []string `yaml:"card_states"`
}

// ColorSettings holds tile colours.
type ColorSettings struct {
	Status        map[string]string `yaml:"status"`
	DefaultStatus string            `yaml:"default_status"`
	Lifecycle     []string          `yaml:"lifecycle"`
	Total         string            `yaml:"total"`
}

// Settings is the optional YAML settings file.
type Settings struct {
	CurrencyCodes map[int]string    `yaml:"currency_codes"`
	Currencies    []string          `yaml:"currencies"`
	Rejection     string            `yaml:"rejection"`
	Lifecycle     LifecycleSettings `yaml:"lifecycle"`
	Colors        ColorSettings     `yaml:"colors"`
	Breakdown     []string          `yaml:"breakdown"`
}

// DefaultSettings mirrors the built-in usecase defaults.
func DefaultSettings() Settings {
	base := usecase.DefaultSettings()
	codes := make(map[int]string)
	for code, symbol := range usecase.DefaultCurrencyCodes() {
		codes[code] = string(symbol)
	}
	var currencies []string
	for _, c := range usecase.DefaultCurrencies() {
		currencies = append(currencies, string(c))
	}
	status := make(map[string]string, len(base.StatusColors))
	for k, v := range base.StatusColors {
		status[k] = v
	}
	return Settings{
		CurrencyCodes: codes,
		Currencies:    currencies,
		Rejection:     string(domain.RejectNotApproved),
		Lifecycle: LifecycleSettings{
			SpecialOperation: base.SpecialOperation,
			CardholderStates: base.CardholderStates,
			CardStates:       base.CardStates,
		},
		Colors: ColorSettings{
			Status:        status,
			DefaultStatus: base.DefaultStatusColor,
			Lifecycle:     append([]string(nil), base.LifecycleColors...),
			Total:         base.TotalColor,
		},
		Breakdown: append([]string(nil), base.BreakdownDimensions...),
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()
	return DecodeSettings(f)
}

// DecodeSettings decodes YAML settings on top of DefaultSettings. Unknown keys are rejected.
// Maps other than colors.status replace their defaults wholesale.
func DecodeSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	defaults := s.Colors.Status
	s.Colors.Status = nil
	codes := s.CurrencyCodes
	s.CurrencyCodes = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	// A configured currency_codes map replaces the defaults.
	if s.CurrencyCodes == nil {
		s.CurrencyCodes = codes
	}

	// Status keys are case-insensitive; configured colours win over defaults.
	status := upperKeys(defaults)
	for k, v := range s.Colors.Status {
		status[strings.ToUpper(k)] = v
	}
	s.Colors.Status = status
	return s, nil
}

func (s Settings) problems() []string {
	var problems []string
	switch domain.RejectionRule(s.Rejection) {
	case domain.RejectNotApproved, domain.RejectDeclinedOnly:
	default:
		problems = append(problems, fmt.Sprintf("invalid rejection rule %q: must be %s or %s",
			s.Rejection, domain.RejectNotApproved, domain.RejectDeclinedOnly))
	}
	if len(s.Currencies) == 0 {
		problems = append(problems, "at least one display currency is required")
	}
	for code, symbol := range s.CurrencyCodes {
		if strings.TrimSpace(symbol) == "" {
			problems = append(problems, fmt.Sprintf("currency code %d has an empty symbol", code))
		}
	}
	return problems
}

// CurrencyMap returns the code table for the normalizer.
func (s Settings) CurrencyMap() map[int]domain.Currency {
	out := make(map[int]domain.Currency, len(s.CurrencyCodes))
	for code, symbol := range s.CurrencyCodes {
		out[code] = domain.Currency(symbol)
	}
	return out
}

// DisplayCurrencies returns the fixed currencies of the split views.
func (s Settings) DisplayCurrencies() []domain.Currency {
	out := make([]domain.Currency, 0, len(s.Currencies))
	for _, c := range s.Currencies {
		out = append(out, domain.Currency(c))
	}
	return out
}

// RejectionRule returns the configured rejection rule.
func (s Settings) RejectionRule() domain.RejectionRule {
	return domain.RejectionRule(s.Rejection)
}

// Dashboard converts the settings to the dashboard use case settings.
func (s Settings) Dashboard() usecase.Settings {
	return usecase.Settings{
		SpecialOperation:    s.Lifecycle.SpecialOperation,
		CardholderStates:    s.Lifecycle.CardholderStates,
		CardStates:          s.Lifecycle.CardStates,
		StatusColors:        upperKeys(s.Colors.Status),
		DefaultStatusColor:  s.Colors.DefaultStatus,
		LifecycleColors:     s.Colors.Lifecycle,
		TotalColor:          s.Colors.Total,
		BreakdownDimensions: s.Breakdown,
	}
}

func upperKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = v
	}
	return out
}
