package pgsql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neacisu/geniuserp-ledger/internal/core/domain"
	"github.com/neacisu/geniuserp-ledger/internal/repositories/database/pgsql"
)

func TestNextValue_SequentialPerYear(t *testing.T) {
	pool := testPool(t)
	provider := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	companyID := uuid.NewString()

	allocate := func(year int) int64 {
		tx, err := pool.Begin(ctx)
		require.NoError(t, err)
		value, err := provider.CounterRepo.NextValue(ctx, tx, companyID, domain.JournalBank, year)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))
		return value
	}

	assert.EqualValues(t, 1, allocate(2024))
	assert.EqualValues(t, 2, allocate(2024))
	assert.EqualValues(t, 1, allocate(2025), "each fiscal year starts its own sequence")

	current, err := provider.CounterRepo.CurrentValue(ctx, companyID, domain.JournalBank, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 2, current)
}

// Hammers the upsert-increment from concurrent transactions. The row lock
// taken by the conflicting UPDATE serializes allocations, so every committed
// value must be unique and the counter must land exactly on the total count.
func TestNextValue_ConcurrentAllocationsAreUnique(t *testing.T) {
	pool := testPool(t)
	provider := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	companyID := uuid.NewString()

	const workers = 8
	const perWorker = 25

	values := make(chan int64, workers*perWorker)
	errs := make(chan error, workers*perWorker)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tx, err := pool.Begin(ctx)
				if err != nil {
					errs <- err
					return
				}
				value, err := provider.CounterRepo.NextValue(ctx, tx, companyID, domain.JournalSales, 2024)
				if err != nil {
					_ = tx.Rollback(ctx)
					errs <- err
					return
				}
				if err := tx.Commit(ctx); err != nil {
					errs <- err
					return
				}
				values <- value
			}
		}()
	}
	wg.Wait()
	close(values)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool, workers*perWorker)
	var highest int64
	for value := range values {
		require.False(t, seen[value], "sequence value %d handed out twice", value)
		seen[value] = true
		if value > highest {
			highest = value
		}
	}
	assert.Len(t, seen, workers*perWorker)
	assert.EqualValues(t, workers*perWorker, highest)

	current, err := provider.CounterRepo.CurrentValue(ctx, companyID, domain.JournalSales, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, workers*perWorker, current)
}

func TestNextValue_AbortedTransactionReissuesValue(t *testing.T) {
	pool := testPool(t)
	provider := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	companyID := uuid.NewString()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	first, err := provider.CounterRepo.NextValue(ctx, tx, companyID, domain.JournalCash, 2024)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.EqualValues(t, 1, first)

	// The increment of an aborted transaction rolls back with it, so the
	// value is reissued rather than skipped.
	tx, err = pool.Begin(ctx)
	require.NoError(t, err)
	second, err := provider.CounterRepo.NextValue(ctx, tx, companyID, domain.JournalCash, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 2, second)
	require.NoError(t, tx.Rollback(ctx))

	tx, err = pool.Begin(ctx)
	require.NoError(t, err)
	third, err := provider.CounterRepo.NextValue(ctx, tx, companyID, domain.JournalCash, 2024)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.EqualValues(t, 2, third)
}
