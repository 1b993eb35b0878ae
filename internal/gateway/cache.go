package gateway

import (
	"context"
	"os"
	"sync"
	"time"

	"wallet-dashboard/internal/domain"
)

// fileStamp identifies one version of a snapshot file.
type fileStamp struct {
	modTime time.Time
	size    int64
}

type snapshotEntry[T any] struct {
	stamp fileStamp
	data  T
}

// snapshotCache memoises one value per dataset until the backing file changes.
type snapshotCache[T any] struct {
	mu    sync.Mutex
	items map[domain.Dataset]snapshotEntry[T]
}

func newSnapshotCache[T any]() *snapshotCache[T] {
	return &snapshotCache[T]{items: make(map[domain.Dataset]snapshotEntry[T])}
}

func (c *snapshotCache[T]) get(dataset domain.Dataset, stamp fileStamp) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	entry, ok := c.items[dataset]
	if !ok || !entry.stamp.modTime.Equal(stamp.modTime) || entry.stamp.size != stamp.size {
		return zero, false
	}
	return entry.data, true
}

func (c *snapshotCache[T]) set(dataset domain.Dataset, stamp fileStamp, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[dataset] = snapshotEntry[T]{stamp: stamp, data: data}
}

// CachedRepository wraps a CSVRecordRepository and reuses parsed snapshots
// until the file's modification time or size changes.
type CachedRepository struct {
	inner        *CSVRecordRepository
	transactions *snapshotCache[*domain.TransactionTable]
	statuses     *snapshotCache[*domain.StatusTable]
	lifecycles   *snapshotCache[*domain.LifecycleTable]
}

// NewCachedRepository creates a caching repository around inner.
func NewCachedRepository(inner *CSVRecordRepository) *CachedRepository {
	return &CachedRepository{
		inner:        inner,
		transactions: newSnapshotCache[*domain.TransactionTable](),
		statuses:     newSnapshotCache[*domain.StatusTable](),
		lifecycles:   newSnapshotCache[*domain.LifecycleTable](),
	}
}

func (r *CachedRepository) stamp(dataset domain.Dataset) (fileStamp, bool) {
	info, err := os.Stat(r.inner.Path(dataset))
	if err != nil {
		return fileStamp{}, false
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, true
}

// GetTransactions returns the cached table when the file is unchanged.
func (r *CachedRepository) GetTransactions(ctx context.Context, dataset domain.Dataset) (*domain.TransactionTable, error) {
	stamp, ok := r.stamp(dataset)
	if ok {
		if table, hit := r.transactions.get(dataset, stamp); hit {
			return table, nil
		}
	}
	table, err := r.inner.GetTransactions(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if ok {
		r.transactions.set(dataset, stamp, table)
	}
	return table, nil
}

// GetStatusCounts returns the cached table when the file is unchanged.
func (r *CachedRepository) GetStatusCounts(ctx context.Context, dataset domain.Dataset) (*domain.StatusTable, error) {
	stamp, ok := r.stamp(dataset)
	if ok {
		if table, hit := r.statuses.get(dataset, stamp); hit {
			return table, nil
		}
	}
	table, err := r.inner.GetStatusCounts(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if ok {
		r.statuses.set(dataset, stamp, table)
	}
	return table, nil
}

// GetLifecycleEvents returns the cached table when the file is unchanged.
func (r *CachedRepository) GetLifecycleEvents(ctx context.Context, dataset domain.Dataset) (*domain.LifecycleTable, error) {
	stamp, ok := r.stamp(dataset)
	if ok {
		if table, hit := r.lifecycles.get(dataset, stamp); hit {
			return table, nil
		}
	}
	table, err := r.inner.GetLifecycleEvents(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if ok {
		r.lifecycles.set(dataset, stamp, table)
	}
	return table, nil
}
