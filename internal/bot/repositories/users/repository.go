package users

import "context"

// Repository tracks lookup targets and their search counts.
type Repository interface {
	// Upsert inserts the user if absent; an existing row keeps its
	// stored display name.
	Upsert(ctx context.Context, userID int64, displayName string) error

	// IncrementSearchCount bumps the user's counter (creating the row
	// with count 1 if needed) and returns the new value. The increment
	// and the read are one atomic statement, so the returned count
	// always includes the current lookup.
	IncrementSearchCount(ctx context.Context, userID int64, displayName string) (int64, error)

	// GetSearchCount returns 0 for ids that were never looked up.
	GetSearchCount(ctx context.Context, userID int64) (int64, error)
}
