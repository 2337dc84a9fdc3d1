package runcount

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:runcount?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE run_counter (
  id   INTEGER PRIMARY KEY CHECK (id = 1),
  runs INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func TestCount_EmptyTableIsZero(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	runs, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, runs)
}

func TestIncrement_CreatesRowThenAdvances(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	n, err := repo.Increment(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repo.Increment(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	runs, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, runs)
}

func TestReset_ZeroesCounter(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Increment(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, repo.Reset(ctx))

	runs, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, runs)
}
