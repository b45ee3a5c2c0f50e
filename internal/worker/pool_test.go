package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RelicWatch_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	leaktest.Verify(t)

	var executed int32
	pool := NewPool(2, 10)
	pool.Start(context.Background())

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	pool.Stop()

	assert.Equal(t, int32(2), atomic.LoadInt32(&executed))
}

func TestPoolSingleWorkerPreservesOrder(t *testing.T) {
	pool := NewPool(1, 100)
	pool.Start(context.Background())

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		})))
	}
	pool.Stop()

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestPoolFailingJobDoesNotStopWorker(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start(context.Background())

	var executed int32
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		return errors.New("boom")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), &testJob{executed: &executed}))
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPoolEnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Enqueue(context.Background(), JobFunc(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolEnqueueRespectsContext(t *testing.T) {
	pool := NewPool(1, 0)
	release := make(chan struct{})
	pool.Start(context.Background())
	defer pool.Stop()

	block := JobFunc(func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, pool.Enqueue(context.Background(), block))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Enqueue(ctx, block)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}
