package guarantors

import (
	"context"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
)

// Repository stores the allowlist of verified guarantors.
type Repository interface {
	// Find returns common.ErrNotFound when the id is not listed.
	Find(ctx context.Context, userID int64) (*models.GuarantorRecord, error)

	// Add inserts a record; a conflicting id yields common.ErrDuplicate.
	Add(ctx context.Context, rec *models.GuarantorRecord) error

	// Remove deletes a record; common.ErrNotFound when no row matched.
	Remove(ctx context.Context, userID int64) error

	// List returns all guarantors in insertion order.
	List(ctx context.Context) ([]*models.GuarantorRecord, error)
}
