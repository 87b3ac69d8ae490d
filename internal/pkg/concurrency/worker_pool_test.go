package concurrency

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordAuditBackend/internal/core/domain"
)

func TestWorkerPool_ProcessesAllTasks(t *testing.T) {
	const n = 50
	pool := NewWorkerPool(4, n)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pool.Start(ctx)

	for i := 0; i < n; i++ {
		i := i
		pool.Submit(Task{
			ID:    strconv.Itoa(i),
			Index: i,
			Function: func() (domain.AuditEntry, error) {
				if i%10 == 9 {
					return domain.AuditEntry{}, errors.New("failed")
				}
				return domain.AuditEntry{Index: i, Mask: "L"}, nil
			},
		})
	}

	seen := make(map[int]bool, n)
	failures := 0
	for len(seen) < n {
		select {
		case r := <-pool.Results():
			seen[r.Index] = true
			if r.Error != nil {
				failures++
				continue
			}
			assert.Equal(t, r.Index, r.Value.Index)
			assert.Equal(t, strconv.Itoa(r.Index), r.TaskID)
		case <-ctx.Done():
			t.Fatal("timed out waiting for results")
		}
	}
	pool.Stop()

	assert.Equal(t, 5, failures)
	stats := pool.GetMetrics()
	assert.Equal(t, 4, stats.Workers)
	assert.Equal(t, int64(45), stats.CompletedTasks)
	assert.Equal(t, int64(5), stats.FailedTasks)
	assert.Equal(t, 0, stats.ActiveWorkers)

	_, open := <-pool.Results()
	assert.False(t, open, "results channel closed after Stop")
}

func TestWorkerPool_TaskTimeout(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Start(context.Background())

	pool.Submit(Task{
		ID:      "slow",
		Timeout: 10 * time.Millisecond,
		Function: func() (domain.AuditEntry, error) {
			time.Sleep(200 * time.Millisecond)
			return domain.AuditEntry{}, nil
		},
	})

	select {
	case r := <-pool.Results():
		require.Error(t, r.Error)
		assert.True(t, errors.Is(r.Error, context.DeadlineExceeded))
	case <-time.After(time.Second):
		t.Fatal("timeout was not enforced")
	}
	pool.Stop()
}

func TestWorkerPool_StopIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()
	assert.Equal(t, 1, pool.GetMetrics().Workers)
}
