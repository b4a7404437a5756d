// Package scammers provides the PostgreSQL-backed blocklist repository.
package scammers

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

func (r *PostgresRepository) Find(ctx context.Context, userID int64) (*models.ScammerRecord, error) {
	query := `
		SELECT user_id, display_name, reason, proofs, proof_key, added_by, added_at
		FROM scammers
		WHERE user_id = $1
	`
	rec := &models.ScammerRecord{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.DisplayName, &rec.Reason, &rec.Proofs, &rec.ProofKey, &rec.AddedBy, &rec.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Add(ctx context.Context, rec *models.ScammerRecord) error {
	query := `
		INSERT INTO scammers (user_id, display_name, reason, proofs, proof_key, added_by, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.DisplayName, rec.Reason, rec.Proofs, rec.ProofKey, rec.AddedBy, rec.AddedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID int64) error {
	query := `DELETE FROM scammers WHERE user_id = $1`

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

func (r *PostgresRepository) SetProofKey(ctx context.Context, userID int64, key string) error {
	query := `UPDATE scammers SET proof_key = $1 WHERE user_id = $2`

	res, err := r.db.ExecContext(ctx, query, key, userID)
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

func (r *PostgresRepository) CountAddedBy(ctx context.Context, adminID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM scammers WHERE added_by = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, adminID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
