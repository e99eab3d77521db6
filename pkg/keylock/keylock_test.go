package keylock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_SameKeyTimesOut(t *testing.T) {
	l := New(20 * time.Millisecond)

	release, err := l.Acquire(context.Background(), "business:1")
	require.NoError(t, err)
	defer release()

	_, err = l.Acquire(context.Background(), "business:1")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestAcquire_DifferentKeysDoNotBlock(t *testing.T) {
	l := New(20 * time.Millisecond)

	release1, err := l.Acquire(context.Background(), "business:1")
	require.NoError(t, err)
	defer release1()

	release2, err := l.Acquire(context.Background(), "business:2")
	require.NoError(t, err)
	release2()
}

func TestAcquire_ReleaseIsIdempotentAndCleansUp(t *testing.T) {
	l := New(time.Second)

	release, err := l.Acquire(context.Background(), "business:1")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	release()
	release()
	assert.Equal(t, 0, l.Len())

	release, err = l.Acquire(context.Background(), "business:1")
	require.NoError(t, err)
	release()
}

func TestAcquire_ContextCancelled(t *testing.T) {
	l := New(0)

	release, err := l.Acquire(context.Background(), "business:1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Acquire(ctx, "business:1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcquire_MutualExclusion(t *testing.T) {
	l := New(5 * time.Second)

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), "business:7")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			if n > atomic.LoadInt32(&maxSeen) {
				atomic.StoreInt32(&maxSeen, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, 0, l.Len())
}
