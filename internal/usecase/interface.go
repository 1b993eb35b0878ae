package usecase

import (
	"context"

	"wallet-dashboard/internal/domain"
)

// RecordRepository defines the interface for loading dataset snapshots.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go RecordRepository
type RecordRepository interface {
	GetTransactions(ctx context.Context, dataset domain.Dataset) (*domain.TransactionTable, error)
	GetStatusCounts(ctx context.Context, dataset domain.Dataset) (*domain.StatusTable, error)
	GetLifecycleEvents(ctx context.Context, dataset domain.Dataset) (*domain.LifecycleTable, error)
}
