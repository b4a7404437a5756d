// Package common defines sentinel errors shared across the bot core.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")

	// Service-level errors.
	ErrInternal         = errors.New("internal error")
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors.
	ErrInvalidUserID = errors.New("invalid user id")
)
