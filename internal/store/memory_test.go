package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pinstore/internal/core"
)

func record(i int) core.Record {
	return core.Record{
		PIN:       fmt.Sprintf("pin%d", i),
		Timestamp: "2024-01-01T00:00:00.000Z",
		IP:        "127.0.0.1",
		CreatedAt: "2024-01-01T00:00:00.000Z",
	}
}

func TestMemoryStore_AppendAndAll(t *testing.T) {
	st := NewMemoryStore(0)
	ctx := context.Background()

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, st.Append(ctx, record(1)))
	require.NoError(t, st.Append(ctx, record(2)))

	all, err = st.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Record{record(1), record(2)}, all)
	assert.Equal(t, ModeMemory, st.Mode())
	assert.False(t, st.Durable())
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	st := NewMemoryStore(core.DefaultMaxRecords)
	ctx := context.Background()

	for i := 0; i < core.DefaultMaxRecords+1; i++ {
		require.NoError(t, st.Append(ctx, record(i)))
	}

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, core.DefaultMaxRecords)
	assert.Equal(t, record(1), all[0])
	assert.Equal(t, record(core.DefaultMaxRecords), all[len(all)-1])
	for i, rec := range all {
		assert.Equal(t, record(i+1), rec)
	}
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	st := NewMemoryStore(10)
	ctx := context.Background()
	require.NoError(t, st.Append(ctx, record(1)))

	all, err := st.All(ctx)
	require.NoError(t, err)
	all[0].PIN = "mutated"

	again, err := st.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pin1", again[0].PIN)
}

func TestMemoryStore_CancelledContextDoesNotAppend(t *testing.T) {
	st := NewMemoryStore(10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.Append(ctx, record(1))
	assert.True(t, core.IsPersistenceError(err))

	all, _ := st.All(context.Background())
	assert.Empty(t, all)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	st := NewMemoryStore(1000)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, st.Append(ctx, record(i)))
		}(i)
	}
	wg.Wait()

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 200)
}
