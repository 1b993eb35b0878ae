package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wallet-dashboard/internal/domain"
)

// Settings tunes how sections are labelled and coloured.
type Settings struct {
	// SpecialOperation makes lifecycle events bucket by operation name, e.g. "creation".
	SpecialOperation string
	CardholderStates []string
	CardStates       []string

	// StatusColors is keyed by upper-case status.
	StatusColors       map[string]string
	DefaultStatusColor string
	LifecycleColors    []string
	TotalColor         string

	BreakdownDimensions []string
}

// DefaultSettings returns the palette and labels used when no settings file is given.
func DefaultSettings() Settings {
	return Settings{
		SpecialOperation: "creation",
		StatusColors: map[string]string{
			"ACTIVE":                "#669966",
			"INACTIVE":              "#4d4d4d",
			"PENDINGIDVERIFICATION": "#6699cc",
			"SUSPENDED":             "#cc9933",
			"TERMINATED":            "#992d22",
			"PENDINGKYC":            "#27408b",
		},
		DefaultStatusColor: "#99cc99",
		LifecycleColors:    []string{"#aa98a9", "#4682b4", "#007bff", "#ff7f50", "#a32834", "#6f42c1"},
		TotalColor:         "#001a33",
		BreakdownDimensions: []string{
			domain.ColumnTransactionType,
			domain.ColumnTransactionStatus,
			domain.ColumnCurrency,
			domain.ColumnNetworkName,
		},
	}
}

// DashboardUseCase loads every dataset and turns it into dashboard sections.
type DashboardUseCase struct {
	repo       RecordRepository
	normalizer *Normalizer
	aggregator *Aggregator
	settings   Settings
	logger     zerolog.Logger
	now        func() time.Time
}

// NewDashboardUseCase creates a new instance of the usecase.
func NewDashboardUseCase(repo RecordRepository, normalizer *Normalizer, aggregator *Aggregator, settings Settings, logger zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		repo:       repo,
		normalizer: normalizer,
		aggregator: aggregator,
		settings:   settings,
		logger:     logger.With().Str("component", "dashboard").Logger(),
		now:        time.Now,
	}
}

// Overview builds every section of the dashboard. A dataset that fails to
// load only marks its own section as failed.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*domain.Overview, error) {
	ov := &domain.Overview{GeneratedAt: uc.now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Cardholders.Inception = uc.statusSection(gctx, domain.DatasetCardholderInception)
		return nil
	})
	g.Go(func() error {
		ov.Cardholders.Yesterday = uc.lifecycleSection(gctx, domain.DatasetCardholderYesterday, uc.settings.CardholderStates)
		return nil
	})
	g.Go(func() error {
		ov.Cards.Inception = uc.statusSection(gctx, domain.DatasetCardInception)
		return nil
	})
	g.Go(func() error {
		ov.Cards.Yesterday = uc.lifecycleSection(gctx, domain.DatasetCardYesterday, uc.settings.CardStates)
		return nil
	})
	g.Go(func() error {
		ov.Inception = uc.transactionSection(gctx, domain.DatasetTransactionInception)
		return nil
	})
	g.Go(func() error {
		ov.Yesterday = uc.transactionSection(gctx, domain.DatasetTransactionYesterday)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ov, nil
}

func (uc *DashboardUseCase) statusSection(ctx context.Context, dataset domain.Dataset) domain.StatusSection {
	section := domain.StatusSection{Dataset: dataset, Tiles: make([]domain.Tile, 0), TotalColor: uc.settings.TotalColor}
	table, err := uc.repo.GetStatusCounts(ctx, dataset)
	if err != nil {
		uc.logger.Error().Err(err).Str("dataset", string(dataset)).Msg("could not load status counts")
		section.Err = err.Error()
		return section
	}

	section.AsOf = table.AsOf
	for _, row := range table.Rows {
		section.Tiles = append(section.Tiles, domain.Tile{
			Label: Capitalize(row.Status),
			Count: row.Count,
			Color: uc.statusColor(row.Status),
		})
	}
	section.Total = table.Total()
	return section
}

func (uc *DashboardUseCase) statusColor(status string) string {
	if c, ok := uc.settings.StatusColors[strings.ToUpper(status)]; ok {
		return c
	}
	return uc.settings.DefaultStatusColor
}

func (uc *DashboardUseCase) lifecycleSection(ctx context.Context, dataset domain.Dataset, known []string) domain.LifecycleSection {
	section := domain.LifecycleSection{Dataset: dataset, Tiles: make([]domain.Tile, 0), TotalColor: uc.settings.TotalColor}
	table, err := uc.repo.GetLifecycleEvents(ctx, dataset)
	if err != nil {
		uc.logger.Error().Err(err).Str("dataset", string(dataset)).Msg("could not load lifecycle events")
		section.Err = err.Error()
		return section
	}

	section.AsOf = table.AsOf
	tally := LifecycleTally(table.Events, known, uc.settings.SpecialOperation)
	for i, label := range bucketOrder(table.Events, known, uc.settings.SpecialOperation) {
		tile := domain.Tile{Label: label, Count: tally[label]}
		if n := len(uc.settings.LifecycleColors); n > 0 {
			tile.Color = uc.settings.LifecycleColors[i%n]
		}
		section.Tiles = append(section.Tiles, tile)
		section.Total += tally[label]
	}
	return section
}

// bucketOrder lists known states first, then unseen buckets as they first appear.
func bucketOrder(events []domain.LifecycleEvent, known []string, special string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, s := range known {
		label := Capitalize(s)
		if !seen[label] {
			seen[label] = true
			order = append(order, label)
		}
	}
	for _, ev := range events {
		label := LifecycleBucket(ev, special)
		if !seen[label] {
			seen[label] = true
			order = append(order, label)
		}
	}
	return order
}

func (uc *DashboardUseCase) transactionSection(ctx context.Context, dataset domain.Dataset) domain.TransactionSection {
	section := domain.TransactionSection{Dataset: dataset}
	table, err := uc.loadNormalized(ctx, dataset)
	if err != nil {
		uc.logger.Error().Err(err).Str("dataset", string(dataset)).Msg("could not load transactions")
		section.Err = err.Error()
		return section
	}
	section.AsOf = table.AsOf

	dimensions := make([]string, 0, len(uc.settings.BreakdownDimensions))
	for _, d := range uc.settings.BreakdownDimensions {
		if table.HasColumn(d) {
			dimensions = append(dimensions, d)
		} else {
			section.Notices = append(section.Notices, fmt.Sprintf("column %q is missing; it is left out of the breakdown", d))
		}
	}

	stats, err := uc.aggregator.TransactionStats(table, dimensions)
	if err != nil {
		uc.logger.Error().Err(err).Str("dataset", string(dataset)).Msg("could not aggregate transactions")
		section.Err = err.Error()
		return section
	}
	section.Stats = stats
	section.Notices = append(section.Notices, issueNotices(table.Issues)...)
	if len(table.Issues) > 0 {
		uc.logger.Warn().
			Str("dataset", string(dataset)).
			Int("issues", len(table.Issues)).
			Int("rows", len(table.Records)).
			Msg("dataset has rows excluded from some views")
	}
	return section
}

func (uc *DashboardUseCase) loadNormalized(ctx context.Context, dataset domain.Dataset) (*domain.TransactionTable, error) {
	table, err := uc.repo.GetTransactions(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("could not get %s: %w", dataset, err)
	}
	return uc.normalizer.Normalize(table), nil
}

// issueNotices summarises non-fatal row issues for display.
func issueNotices(issues []domain.RowIssue) []string {
	var dates int
	codes := make(map[string]int)
	for _, issue := range issues {
		var codeErr *domain.CurrencyCodeError
		switch {
		case errors.Is(issue.Err, domain.ErrUnparseableDate):
			dates++
		case errors.As(issue.Err, &codeErr):
			codes[codeErr.Code]++
		}
	}

	var notices []string
	if dates > 0 {
		notices = append(notices, fmt.Sprintf("%d rows have an unparseable date and are excluded from date-filtered views", dates))
	}
	if len(codes) > 0 {
		keys := make([]string, 0, len(codes))
		total := 0
		for k, n := range codes {
			keys = append(keys, k)
			total += n
		}
		sort.Strings(keys)
		notices = append(notices, fmt.Sprintf("%d rows use unmapped currency codes (%s) and are excluded from the currency split", total, strings.Join(keys, ", ")))
	}
	return notices
}

// Filter applies predicates to the normalized inception transactions.
func (uc *DashboardUseCase) Filter(ctx context.Context, p domain.Predicates) (*domain.FilterResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	table, err := uc.loadNormalized(ctx, domain.DatasetTransactionInception)
	if err != nil {
		return nil, err
	}

	filtered := ApplyTable(table, p)
	stats, err := uc.aggregator.TransactionStats(filtered, nil)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug().
		Int("rows", len(table.Records)).
		Int("matched", len(filtered.Records)).
		Msg("filter applied")

	return &domain.FilterResult{Predicates: p, Table: filtered, Stats: *stats}, nil
}

// FilterOptions lists the values offered by the filter form.
func (uc *DashboardUseCase) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	table, err := uc.loadNormalized(ctx, domain.DatasetTransactionInception)
	if err != nil {
		return nil, err
	}
	opts := Options(table.Records)
	return &opts, nil
}
