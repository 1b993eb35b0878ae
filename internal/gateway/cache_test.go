package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-dashboard/internal/domain"
)

func TestCachedRepository_ReusesUntilFileChanges(t *testing.T) {
	dir := writeRaw(t, domain.DatasetCardInception, "status,count\nACTIVE,1\n")
	path := filepath.Join(dir, domain.DatasetCardInception.FileName())
	repo := NewCachedRepository(NewCSVRecordRepository(dir))
	ctx := context.Background()

	first, err := repo.GetStatusCounts(ctx, domain.DatasetCardInception)
	require.NoError(t, err)
	second, err := repo.GetStatusCounts(ctx, domain.DatasetCardInception)
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("status,count\nACTIVE,2\nINACTIVE,5\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := repo.GetStatusCounts(ctx, domain.DatasetCardInception)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, int64(7), third.Total())
}

func TestCachedRepository_ErrorsAreNotCached(t *testing.T) {
	dir := t.TempDir()
	repo := NewCachedRepository(NewCSVRecordRepository(dir))
	ctx := context.Background()

	_, err := repo.GetTransactions(ctx, domain.DatasetTransactionYesterday)
	assert.True(t, domain.IsDataUnavailable(err))

	content := "transaction_type,transaction_status\nwcredit,Approved\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.DatasetTransactionYesterday.FileName()), []byte(content), 0o644))

	table, err := repo.GetTransactions(ctx, domain.DatasetTransactionYesterday)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)
}

func TestCachedRepository_LifecycleEvents(t *testing.T) {
	dir := writeRaw(t, domain.DatasetCardholderYesterday, "operation,newstate,count\nupdate,ACTIVE,3\n")
	repo := NewCachedRepository(NewCSVRecordRepository(dir))
	ctx := context.Background()

	first, err := repo.GetLifecycleEvents(ctx, domain.DatasetCardholderYesterday)
	require.NoError(t, err)
	second, err := repo.GetLifecycleEvents(ctx, domain.DatasetCardholderYesterday)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = repo.GetLifecycleEvents(ctx, domain.DatasetCardYesterday)
	assert.True(t, domain.IsDataUnavailable(err))
}
