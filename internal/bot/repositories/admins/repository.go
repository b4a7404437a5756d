package admins

import (
	"context"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
)

// Repository stores ordinary admins. The owner id is privileged without a
// row; Ensure is used to seed it at startup anyway so the table reflects
// the full admin set.
type Repository interface {
	// Find returns common.ErrNotFound when the id is not an admin.
	Find(ctx context.Context, userID int64) (*models.AdminRecord, error)

	// Add inserts a record; a conflicting id yields common.ErrDuplicate.
	Add(ctx context.Context, rec *models.AdminRecord) error

	// Remove deletes a record; common.ErrNotFound when no row matched.
	Remove(ctx context.Context, userID int64) error

	// Ensure inserts the record if absent and leaves an existing row
	// untouched.
	Ensure(ctx context.Context, rec *models.AdminRecord) error
}
