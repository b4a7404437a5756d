package users

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// The counter SQL runs unchanged on SQLite, which makes the monotonicity
// property cheap to verify against a real database.
func setupSqliteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:users_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		user_id      INTEGER PRIMARY KEY,
		display_name TEXT    NOT NULL DEFAULT '',
		search_count INTEGER NOT NULL DEFAULT 0
	);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM users`)
	require.NoError(t, err)
	return db
}

func TestIncrementSearchCount_SequenceIsStrictlyMonotonic(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := repo.IncrementSearchCount(ctx, 42, "alice")
		require.NoError(t, err)
		require.Equal(t, want, got, "count must include the current lookup")
	}

	stored, err := repo.GetSearchCount(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, int64(5), stored)
}

func TestIncrementSearchCount_KeepsStoredName(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	_, err := repo.IncrementSearchCount(ctx, 7, "original")
	require.NoError(t, err)
	_, err = repo.IncrementSearchCount(ctx, 7, "changed")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(`SELECT display_name FROM users WHERE user_id = 7`).Scan(&name))
	require.Equal(t, "original", name)
}

func TestGetSearchCount_NeverLookedUp(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewPostgresRepository(db)

	got, err := repo.GetSearchCount(context.Background(), 123456)
	require.NoError(t, err)
	require.Equal(t, int64(0), got)
}

func TestUpsert_DoesNotTouchCounter(t *testing.T) {
	db := setupSqliteDB(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	_, err := repo.IncrementSearchCount(ctx, 9, "bob")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, 9, "bob2"))

	count, err := repo.GetSearchCount(ctx, 9)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
