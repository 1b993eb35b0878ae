package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-dashboard/internal/domain"
	"wallet-dashboard/internal/usecase"
	mock_usecase "wallet-dashboard/internal/usecase/mocks"
)

var asOf = time.Date(2024, 5, 1, 6, 30, 0, 0, time.UTC)

func transactionTable(dataset domain.Dataset) *domain.TransactionTable {
	return &domain.TransactionTable{
		Dataset: dataset,
		Columns: []string{"transaction_type", "transaction_status", "bill_amt", "bill_curr", "date"},
		Records: []domain.TransactionRecord{
			{Line: 2, Type: "wcredit", Status: "Approved", BillAmount: amount("100"), BillCurrency: code(368), Date: asOf, DateValid: true},
			{Line: 3, Type: "purchase", Status: "Declined", BillAmount: amount("50"), BillCurrency: code(840), Date: asOf, DateValid: true},
			{Line: 4, Type: "purchase", Status: "Approved", BillAmount: amount("7"), BillCurrency: code(978)},
		},
		AsOf:   asOf,
		Issues: []domain.RowIssue{{Line: 4, Err: domain.ErrUnparseableDate}},
	}
}

func newDashboard(repo usecase.RecordRepository, settings usecase.Settings) *usecase.DashboardUseCase {
	return usecase.NewDashboardUseCase(
		repo,
		usecase.NewNormalizer(nil),
		usecase.NewAggregator(domain.RejectNotApproved, nil),
		settings,
		zerolog.Nop(),
	)
}

func TestDashboardUseCase_Overview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_usecase.NewMockRecordRepository(ctrl)

	repo.EXPECT().GetStatusCounts(gomock.Any(), domain.DatasetCardholderInception).Return(&domain.StatusTable{
		Dataset: domain.DatasetCardholderInception,
		Rows:    []domain.StatusCount{{Status: "ACTIVE", Count: 10}, {Status: "UNKNOWN", Count: 1}},
		AsOf:    asOf,
	}, nil)
	repo.EXPECT().GetLifecycleEvents(gomock.Any(), domain.DatasetCardholderYesterday).Return(&domain.LifecycleTable{
		Dataset: domain.DatasetCardholderYesterday,
		Events: []domain.LifecycleEvent{
			{Operation: "cardholder_creation", Count: 5},
			{Operation: "update", NewState: "ACTIVE", HasNewState: true, Count: 3},
		},
		AsOf: asOf,
	}, nil)
	repo.EXPECT().GetStatusCounts(gomock.Any(), domain.DatasetCardInception).
		Return(nil, &domain.RecordError{Dataset: domain.DatasetCardInception, Field: "count", Err: errors.New("missing column")})
	repo.EXPECT().GetLifecycleEvents(gomock.Any(), domain.DatasetCardYesterday).
		Return(nil, domain.ErrDataUnavailable)
	repo.EXPECT().GetTransactions(gomock.Any(), domain.DatasetTransactionInception).
		Return(transactionTable(domain.DatasetTransactionInception), nil)
	repo.EXPECT().GetTransactions(gomock.Any(), domain.DatasetTransactionYesterday).
		Return(transactionTable(domain.DatasetTransactionYesterday), nil)

	settings := usecase.DefaultSettings()
	settings.CardholderStates = []string{"ACTIVE", "SUSPENDED"}
	ov, err := newDashboard(repo, settings).Overview(context.Background())
	require.NoError(t, err)

	// Cardholders since inception.
	ch := ov.Cardholders.Inception
	assert.Empty(t, ch.Err)
	assert.Equal(t, asOf, ch.AsOf)
	assert.Equal(t, []domain.Tile{
		{Label: "Active", Count: 10, Color: "#669966"},
		{Label: "Unknown", Count: 1, Color: "#99cc99"},
	}, ch.Tiles)
	assert.Equal(t, int64(11), ch.Total)
	assert.Equal(t, "#001a33", ch.TotalColor)

	// Cardholders yesterday: known states first, then new buckets.
	cy := ov.Cardholders.Yesterday
	require.Len(t, cy.Tiles, 3)
	assert.Equal(t, "Active", cy.Tiles[0].Label)
	assert.Equal(t, int64(3), cy.Tiles[0].Count)
	assert.Equal(t, "Suspended", cy.Tiles[1].Label)
	assert.Equal(t, int64(0), cy.Tiles[1].Count)
	assert.Equal(t, "Cardholder_creation", cy.Tiles[2].Label)
	assert.Equal(t, int64(8), cy.Total)
	assert.Equal(t, "#aa98a9", cy.Tiles[0].Color)

	// A failing dataset only fails its own section.
	assert.Contains(t, ov.Cards.Inception.Err, "missing column")
	assert.Contains(t, ov.Cards.Yesterday.Err, "data unavailable")

	for _, section := range []domain.TransactionSection{ov.Inception, ov.Yesterday} {
		assert.Empty(t, section.Err)
		require.NotNil(t, section.Stats)
		assert.Equal(t, domain.SummaryCounts{Total: 3, Approved: 2, Rejected: 1}, section.Stats.Summary)
		assert.Equal(t, 1, section.Stats.Unpartitioned)
		assert.Equal(t, domain.SummaryCounts{Total: 1, Approved: 1}, section.Stats.Loads)
		require.NotNil(t, section.Stats.Breakdown)
		assert.Equal(t, []string{"transaction_type", "transaction_status", "currency"}, section.Stats.Breakdown.Dimensions)
		assert.Equal(t, []string{
			`column "networkname" is missing; it is left out of the breakdown`,
			"1 rows have an unparseable date and are excluded from date-filtered views",
			"1 rows use unmapped currency codes (978) and are excluded from the currency split",
		}, section.Notices)
	}
	assert.Equal(t, domain.DatasetTransactionYesterday, ov.Yesterday.Dataset)
}

func TestDashboardUseCase_Overview_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_usecase.NewMockRecordRepository(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo.EXPECT().GetStatusCounts(gomock.Any(), gomock.Any()).Return(nil, context.Canceled).AnyTimes()
	repo.EXPECT().GetLifecycleEvents(gomock.Any(), gomock.Any()).Return(nil, context.Canceled).AnyTimes()
	repo.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).Return(nil, context.Canceled).AnyTimes()

	ov, err := newDashboard(repo, usecase.DefaultSettings()).Overview(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ov)
}

func TestDashboardUseCase_Filter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		predicates domain.Predicates
		repoErr    error
		wantRows   int
		wantErr    error
	}{
		{
			name:       "by type",
			predicates: domain.Predicates{TransactionType: "purchase"},
			wantRows:   2,
		},
		{
			name:       "by mapped currency",
			predicates: domain.Predicates{Currency: domain.CurrencyUSD},
			wantRows:   1,
		},
		{
			name:       "date bound drops undated rows",
			predicates: domain.Predicates{StartDate: day("2024-05-01")},
			wantRows:   2,
		},
		{
			name:       "repository error",
			predicates: domain.Predicates{},
			repoErr:    domain.ErrDataUnavailable,
			wantErr:    domain.ErrDataUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock_usecase.NewMockRecordRepository(ctrl)
			if tt.repoErr != nil {
				repo.EXPECT().GetTransactions(gomock.Any(), domain.DatasetTransactionInception).Return(nil, tt.repoErr)
			} else {
				repo.EXPECT().GetTransactions(gomock.Any(), domain.DatasetTransactionInception).
					Return(transactionTable(domain.DatasetTransactionInception), nil)
			}

			got, err := newDashboard(repo, usecase.DefaultSettings()).Filter(context.Background(), tt.predicates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.predicates, got.Predicates)
			assert.Len(t, got.Table.Records, tt.wantRows)
			assert.Equal(t, tt.wantRows, got.Stats.Summary.Total)
			assert.Nil(t, got.Stats.Breakdown)
			assert.Contains(t, got.Table.Columns, "currency")
		})
	}
}

func TestDashboardUseCase_Filter_InvalidPredicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_usecase.NewMockRecordRepository(ctrl)

	_, err := newDashboard(repo, usecase.DefaultSettings()).Filter(context.Background(), domain.Predicates{
		StartDate: day("2024-02-01"),
		EndDate:   day("2024-01-01"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidPredicates)
	assert.True(t, domain.IsClientError(err))
}

func TestDashboardUseCase_FilterOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_usecase.NewMockRecordRepository(ctrl)
	repo.EXPECT().GetTransactions(gomock.Any(), domain.DatasetTransactionInception).
		Return(transactionTable(domain.DatasetTransactionInception), nil)

	got, err := newDashboard(repo, usecase.DefaultSettings()).FilterOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.TransactionType{"wcredit", "purchase"}, got.Types)
	assert.Equal(t, []domain.Currency{domain.CurrencyIQD, domain.CurrencyUSD, "978"}, got.Currencies)
	require.NotNil(t, got.MinDate)
	assert.Equal(t, asOf, *got.MinDate)
}
