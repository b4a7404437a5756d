package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/repomanager"
	"github.com/dmitrijs2005/trustbot/internal/common"
	"github.com/dmitrijs2005/trustbot/internal/dbx"
)

// RecordService curates the scammer/guarantor/admin tables. Every
// mutation checks the actor's tier first: adding or removing scammers and
// guarantors needs admin tier, managing the admin roster needs the owner.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	access      *AccessService
	now         func() time.Time
	withTx      func(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx dbx.DBTX) error) error
}

// NewRecordService constructs a RecordService gated by the given
// AccessService.
func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, access *AccessService) *RecordService {
	return &RecordService{db: db, repomanager: m, access: access, now: time.Now, withTx: dbx.WithTx}
}

// AddScammer inserts a blocklist record attributed to the actor.
// Duplicate ids are rejected with ErrDuplicate.
func (s *RecordService) AddScammer(ctx context.Context, actorID int64, rec *models.ScammerRecord) error {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	rec.AddedBy = actorID
	rec.AddedAt = s.now()

	// Insert the record and remember the display name in one transaction
	// so later lookups can show the name.
	return s.withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Upsert(ctx, rec.UserID, rec.DisplayName); err != nil {
			return err
		}
		return s.repomanager.Scammers(tx).Add(ctx, rec)
	})
}

// RemoveScammer deletes a blocklist record.
func (s *RecordService) RemoveScammer(ctx context.Context, actorID, userID int64) error {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repomanager.Scammers(s.db).Remove(ctx, userID)
}

// AddGuarantor inserts an allowlist record attributed to the actor.
func (s *RecordService) AddGuarantor(ctx context.Context, actorID int64, rec *models.GuarantorRecord) error {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	rec.AddedBy = actorID
	rec.AddedAt = s.now()

	return s.withTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Upsert(ctx, rec.UserID, rec.DisplayName); err != nil {
			return err
		}
		return s.repomanager.Guarantors(tx).Add(ctx, rec)
	})
}

// RemoveGuarantor deletes an allowlist record.
func (s *RecordService) RemoveGuarantor(ctx context.Context, actorID, userID int64) error {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repomanager.Guarantors(s.db).Remove(ctx, userID)
}

// AddAdmin inserts an admin record. Owner only; an admin-tier actor gets
// ErrPermissionDenied.
func (s *RecordService) AddAdmin(ctx context.Context, actorID int64, rec *models.AdminRecord) error {
	if _, err := s.access.RequireOwner(ctx, actorID); err != nil {
		return err
	}
	rec.AddedBy = actorID
	rec.AddedAt = s.now()
	return s.repomanager.Admins(s.db).Add(ctx, rec)
}

// RemoveAdmin deletes an admin record. Owner only; the owner id itself
// cannot be removed.
func (s *RecordService) RemoveAdmin(ctx context.Context, actorID, userID int64) error {
	if _, err := s.access.RequireOwner(ctx, actorID); err != nil {
		return err
	}
	if s.access.IsOwner(userID) {
		return common.ErrPermissionDenied
	}
	return s.repomanager.Admins(s.db).Remove(ctx, userID)
}

// AttachScammerProof links an uploaded proof photo to an existing
// blocklist record.
func (s *RecordService) AttachScammerProof(ctx context.Context, actorID, userID int64, key string) error {
	if _, err := s.access.RequireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.repomanager.Scammers(s.db).SetProofKey(ctx, userID, key)
}

// ListGuarantors returns the allowlist in insertion order. Open to
// everyone.
func (s *RecordService) ListGuarantors(ctx context.Context) ([]*models.GuarantorRecord, error) {
	return s.repomanager.Guarantors(s.db).List(ctx)
}

// CountScammersAddedBy counts blocklist records attributed to adminID.
func (s *RecordService) CountScammersAddedBy(ctx context.Context, adminID int64) (int64, error) {
	return s.repomanager.Scammers(s.db).CountAddedBy(ctx, adminID)
}
