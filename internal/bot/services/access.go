package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/trustbot/internal/common"
)

// Permission is the result of an access check.
type Permission struct {
	IsAdmin     bool
	Tier        models.Tier
	DisplayName string
}

// AccessService decides whether an actor may perform administrative
// mutations and at which tier. The owner id is configured statically and
// never requires a table row.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ownerID     int64
}

// NewAccessService constructs an AccessService for the given owner id.
func NewAccessService(db *sql.DB, m repomanager.RepositoryManager, ownerID int64) *AccessService {
	return &AccessService{db: db, repomanager: m, ownerID: ownerID}
}

// IsOwner reports whether id is the configured owner.
func (s *AccessService) IsOwner(id int64) bool {
	return id == s.ownerID
}

// Check classifies the actor. The owner id short-circuits before any
// store lookup; everyone else is an admin only with an admins row.
func (s *AccessService) Check(ctx context.Context, actorID int64) (*Permission, error) {
	if s.IsOwner(actorID) {
		return &Permission{IsAdmin: true, Tier: models.TierOwner}, nil
	}

	rec, err := s.repomanager.Admins(s.db).Find(ctx, actorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &Permission{Tier: models.TierNone}, nil
		}
		return nil, err
	}

	return &Permission{IsAdmin: true, Tier: models.TierAdmin, DisplayName: rec.DisplayName}, nil
}

// RequireAdmin returns the actor's permission or ErrPermissionDenied when
// the actor is neither an admin nor the owner.
func (s *AccessService) RequireAdmin(ctx context.Context, actorID int64) (*Permission, error) {
	p, err := s.Check(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin {
		return nil, common.ErrPermissionDenied
	}
	return p, nil
}

// RequireOwner returns the actor's permission or ErrPermissionDenied for
// any actor other than the owner, ordinary admins included.
func (s *AccessService) RequireOwner(ctx context.Context, actorID int64) (*Permission, error) {
	p, err := s.Check(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if p.Tier != models.TierOwner {
		return nil, common.ErrPermissionDenied
	}
	return p, nil
}
