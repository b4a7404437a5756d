// Package guarantors provides the PostgreSQL-backed allowlist repository.
package guarantors

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

func (r *PostgresRepository) Find(ctx context.Context, userID int64) (*models.GuarantorRecord, error) {
	query := `
		SELECT user_id, display_name, info_link, proofs_link, added_by, added_at
		FROM guarantors
		WHERE user_id = $1
	`
	rec := &models.GuarantorRecord{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.DisplayName, &rec.InfoLink, &rec.ProofsLink, &rec.AddedBy, &rec.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Add(ctx context.Context, rec *models.GuarantorRecord) error {
	query := `
		INSERT INTO guarantors (user_id, display_name, info_link, proofs_link, added_by, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.DisplayName, rec.InfoLink, rec.ProofsLink, rec.AddedBy, rec.AddedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64) error {
	query := `DELETE FROM guarantors WHERE user_id = $1`

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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.GuarantorRecord, error) {
	query := `
		SELECT user_id, display_name, info_link, proofs_link, added_by, added_at
		FROM guarantors
		ORDER BY added_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.GuarantorRecord
	for rows.Next() {
		rec := &models.GuarantorRecord{}
		if err := rows.Scan(&rec.UserID, &rec.DisplayName, &rec.InfoLink, &rec.ProofsLink, &rec.AddedBy, &rec.AddedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
