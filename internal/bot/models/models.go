// Package models defines the persisted entities of the trust registry.
// Every entity is keyed by the opaque integer user id assigned by the
// messaging platform.
package models

import "time"

// User is created on first lookup and never deleted. SearchCount only
// grows.
type User struct {
	UserID      int64
	DisplayName string
	SearchCount int64
}

// ScammerRecord marks a user id as a known scammer. ProofKey, when set,
// is the object-storage key of an attached proof photo.
type ScammerRecord struct {
	UserID      int64
	DisplayName string
	Reason      string
	Proofs      string
	ProofKey    string
	AddedBy     int64
	AddedAt     time.Time
}

// GuarantorRecord marks a user id as a verified guarantor.
type GuarantorRecord struct {
	UserID      int64
	DisplayName string
	InfoLink    string
	ProofsLink  string
	AddedBy     int64
	AddedAt     time.Time
}

// AdminRecord grants ordinary admin privileges. The owner id is always
// treated as an admin whether or not a row exists for it.
type AdminRecord struct {
	UserID      int64
	DisplayName string
	AddedBy     int64
	AddedAt     time.Time
}
