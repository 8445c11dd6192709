package store

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pinstore/internal/core"
)

// newTestPostgresStore connects to TEST_DATABASE_URL and starts from an empty
// table. Tests are skipped when the variable is unset.
func newTestPostgresStore(t *testing.T, maxRecords int) *PostgresStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	st, err := NewPostgresStore(ctx, pool, maxRecords)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `TRUNCATE pin_submissions RESTART IDENTITY`)
	require.NoError(t, err)
	return st
}

func TestPostgresStore_AppendAndEvict(t *testing.T) {
	st := newTestPostgresStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.Append(ctx, record(i)))
	}

	all, err := st.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Record{record(2), record(3), record(4)}, all)
	assert.Equal(t, ModePostgres, st.Mode())
	assert.True(t, st.Durable())
}

func TestPostgresStore_CancelledContextDoesNotAppend(t *testing.T) {
	st := newTestPostgresStore(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := st.Append(ctx, record(1))
	assert.True(t, core.IsPersistenceError(err))

	all, err := st.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
