// Package users provides the PostgreSQL-backed repository for lookup
// counters.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trustbot/internal/dbx"
)

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, userID int64, displayName string) error {
	query := `
		INSERT INTO users (user_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, displayName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IncrementSearchCount(ctx context.Context, userID int64, displayName string) (int64, error) {
	// Single statement: concurrent lookups of the same id serialize on
	// the row and can never observe the same pre-increment count.
	query := `
		INSERT INTO users (user_id, display_name, search_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id)
		DO UPDATE SET search_count = users.search_count + 1
		RETURNING search_count
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID, displayName).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) GetSearchCount(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT search_count FROM users WHERE user_id = $1`

	var count int64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
