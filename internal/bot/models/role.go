package models

// Role classifies a user id. Resolution checks the tables in a fixed
// priority order, so an id present in several tables still maps to
// exactly one Role.
type Role int

const (
	RolePlain Role = iota
	RoleScammer
	RoleGuarantor
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleScammer:
		return "scammer"
	case RoleGuarantor:
		return "guarantor"
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// Tier is the privilege level of an actor. Only the owner may manage the
// admin table itself.
type Tier int

const (
	TierNone Tier = iota
	TierAdmin
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierOwner:
		return "owner"
	case TierAdmin:
		return "admin"
	default:
		return "none"
	}
}
