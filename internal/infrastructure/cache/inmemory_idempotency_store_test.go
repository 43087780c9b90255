package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Acquire(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("first acquire succeeds", func(t *testing.T) {
		claimed, err := store.Acquire(ctx, "checkin:token-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("second acquire of same key fails", func(t *testing.T) {
		claimed, err := store.Acquire(ctx, "checkin:token-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("different key acquires independently", func(t *testing.T) {
		claimed, err := store.Acquire(ctx, "checkin:token-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("expired claim can be reacquired", func(t *testing.T) {
		claimed, err := store.Acquire(ctx, "checkin:short", time.Millisecond)
		require.NoError(t, err)
		require.True(t, claimed)

		time.Sleep(5 * time.Millisecond)

		claimed, err = store.Acquire(ctx, "checkin:short", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestInMemoryIdempotencyStore_ConcurrentAcquire(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	const goroutines = 32
	var wg sync.WaitGroup
	winners := make(chan struct{}, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := store.Acquire(context.Background(), "contested", time.Minute)
			assert.NoError(t, err)
			if claimed {
				winners <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(winners)

	assert.Len(t, winners, 1)
}

func TestInMemoryIdempotencyStore_Sweep(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	_, err := store.Acquire(ctx, "a", time.Millisecond)
	require.NoError(t, err)
	_, err = store.Acquire(ctx, "b", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.sweep()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
