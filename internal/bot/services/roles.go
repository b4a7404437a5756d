// Package services contains the bot's business logic: role resolution,
// permission checks, and curation of the scammer/guarantor/admin tables.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/trustbot/internal/common"
)

// CheckResult is the outcome of a trust lookup: the resolved role, the
// search count including the current lookup, and the matched record (if
// any) for the handler layer to format.
type CheckResult struct {
	Role        models.Role
	SearchCount int64
	Scammer     *models.ScammerRecord
	Guarantor   *models.GuarantorRecord
	Admin       *models.AdminRecord
}

// RoleService resolves user ids into roles and maintains per-id search
// counters.
type RoleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewRoleService constructs a RoleService on the given handle and
// repositories.
func NewRoleService(db *sql.DB, m repomanager.RepositoryManager) *RoleService {
	return &RoleService{db: db, repomanager: m}
}

// Resolve classifies a user id by checking the tables in fixed priority
// order: scammer, then guarantor, then admin, then plain user. The order
// decides which profile is shown when an id sits in several tables, so it
// must not change. Read-only.
func (s *RoleService) Resolve(ctx context.Context, userID int64) (models.Role, error) {
	res, err := s.resolve(ctx, userID)
	if err != nil {
		return models.RolePlain, err
	}
	return res.Role, nil
}

func (s *RoleService) resolve(ctx context.Context, userID int64) (*CheckResult, error) {
	res := &CheckResult{Role: models.RolePlain}

	scammer, err := s.repomanager.Scammers(s.db).Find(ctx, userID)
	if err == nil {
		res.Role = models.RoleScammer
		res.Scammer = scammer
		return res, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	guarantor, err := s.repomanager.Guarantors(s.db).Find(ctx, userID)
	if err == nil {
		res.Role = models.RoleGuarantor
		res.Guarantor = guarantor
		return res, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	admin, err := s.repomanager.Admins(s.db).Find(ctx, userID)
	if err == nil {
		res.Role = models.RoleAdmin
		res.Admin = admin
		return res, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	return res, nil
}

// CheckUser resolves the role of userID and bumps its search counter.
// The counter is incremented before it is read back, so the reported
// count includes the current lookup.
func (s *RoleService) CheckUser(ctx context.Context, userID int64, displayName string) (*CheckResult, error) {
	res, err := s.resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repomanager.Users(s.db).IncrementSearchCount(ctx, userID, displayName)
	if err != nil {
		return nil, err
	}
	res.SearchCount = count

	return res, nil
}

// SearchCount returns the stored counter for userID; 0 when the id was
// never looked up.
func (s *RoleService) SearchCount(ctx context.Context, userID int64) (int64, error) {
	return s.repomanager.Users(s.db).GetSearchCount(ctx, userID)
}
