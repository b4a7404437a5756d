package scammers

import (
	"context"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
)

// Repository stores the blocklist.
type Repository interface {
	// Find returns common.ErrNotFound when the id is not listed.
	Find(ctx context.Context, userID int64) (*models.ScammerRecord, error)

	// Add inserts a record; a conflicting id yields common.ErrDuplicate.
	Add(ctx context.Context, rec *models.ScammerRecord) error

	// Remove deletes a record; common.ErrNotFound when no row matched.
	Remove(ctx context.Context, userID int64) error

	// SetProofKey attaches a proof photo storage key to an existing
	// record; common.ErrNotFound when the id is not listed.
	SetProofKey(ctx context.Context, userID int64, key string) error

	// CountAddedBy counts records attributed to the given admin.
	CountAddedBy(ctx context.Context, adminID int64) (int64, error)
}
