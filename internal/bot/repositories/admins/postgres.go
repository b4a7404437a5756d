// Package admins provides the PostgreSQL-backed admin-roster repository.
package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/common"
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

func (r *PostgresRepository) Find(ctx context.Context, userID int64) (*models.AdminRecord, error) {
	query := `
		SELECT user_id, display_name, added_by, added_at
		FROM admins
		WHERE user_id = $1
	`
	rec := &models.AdminRecord{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.DisplayName, &rec.AddedBy, &rec.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Add(ctx context.Context, rec *models.AdminRecord) error {
	query := `
		INSERT INTO admins (user_id, display_name, added_by, added_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, rec.UserID, rec.DisplayName, rec.AddedBy, rec.AddedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64) error {
	query := `DELETE FROM admins WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Ensure(ctx context.Context, rec *models.AdminRecord) error {
	query := `
		INSERT INTO admins (user_id, display_name, added_by, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, rec.UserID, rec.DisplayName, rec.AddedBy, rec.AddedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
