package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	adminsrepo "github.com/dmitrijs2005/trustbot/internal/bot/repositories/admins"
	guarantorsrepo "github.com/dmitrijs2005/trustbot/internal/bot/repositories/guarantors"
	scammersrepo "github.com/dmitrijs2005/trustbot/internal/bot/repositories/scammers"
	usersrepo "github.com/dmitrijs2005/trustbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/trustbot/internal/common"
	"github.com/dmitrijs2005/trustbot/internal/dbx"
)

// --- fakes ---

type fakeUsersRepo struct {
	counter int64
	incrErr error
	getErr  error
}

func (f *fakeUsersRepo) Upsert(ctx context.Context, userID int64, displayName string) error {
	return nil
}

func (f *fakeUsersRepo) IncrementSearchCount(ctx context.Context, userID int64, displayName string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counter++
	return f.counter, nil
}

func (f *fakeUsersRepo) GetSearchCount(ctx context.Context, userID int64) (int64, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	return f.counter, nil
}

type fakeScammersRepo struct {
	rec         *models.ScammerRecord
	findErr     error
	added       []*models.ScammerRecord
	addErr      error
	removeErr   error
	count       int64
	countErr    error
	proofKeys   map[int64]string
	setProofErr error
}

func (f *fakeScammersRepo) Find(ctx context.Context, userID int64) (*models.ScammerRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.rec == nil {
		return nil, common.ErrNotFound
	}
	return f.rec, nil
}

func (f *fakeScammersRepo) Add(ctx context.Context, rec *models.ScammerRecord) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, rec)
	return nil
}

func (f *fakeScammersRepo) Remove(ctx context.Context, userID int64) error {
	return f.removeErr
}

func (f *fakeScammersRepo) SetProofKey(ctx context.Context, userID int64, key string) error {
	if f.setProofErr != nil {
		return f.setProofErr
	}
	if f.proofKeys == nil {
		f.proofKeys = map[int64]string{}
	}
	f.proofKeys[userID] = key
	return nil
}

func (f *fakeScammersRepo) CountAddedBy(ctx context.Context, adminID int64) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

type fakeGuarantorsRepo struct {
	rec       *models.GuarantorRecord
	findErr   error
	added     []*models.GuarantorRecord
	addErr    error
	removeErr error
	list      []*models.GuarantorRecord
	listErr   error
}

func (f *fakeGuarantorsRepo) Find(ctx context.Context, userID int64) (*models.GuarantorRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.rec == nil {
		return nil, common.ErrNotFound
	}
	return f.rec, nil
}

func (f *fakeGuarantorsRepo) Add(ctx context.Context, rec *models.GuarantorRecord) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, rec)
	return nil
}

func (f *fakeGuarantorsRepo) Remove(ctx context.Context, userID int64) error {
	return f.removeErr
}

func (f *fakeGuarantorsRepo) List(ctx context.Context) ([]*models.GuarantorRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

type fakeAdminsRepo struct {
	rec       *models.AdminRecord
	findErr   error
	added     []*models.AdminRecord
	addErr    error
	removed   []int64
	removeErr error
}

func (f *fakeAdminsRepo) Find(ctx context.Context, userID int64) (*models.AdminRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.rec == nil || f.rec.UserID != userID {
		return nil, common.ErrNotFound
	}
	return f.rec, nil
}

func (f *fakeAdminsRepo) Add(ctx context.Context, rec *models.AdminRecord) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, rec)
	return nil
}

func (f *fakeAdminsRepo) Remove(ctx context.Context, userID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, userID)
	return nil
}

func (f *fakeAdminsRepo) Ensure(ctx context.Context, rec *models.AdminRecord) error {
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeScammersRepo
	g *fakeGuarantorsRepo
	a *fakeAdminsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		s: &fakeScammersRepo{},
		g: &fakeGuarantorsRepo{},
		a: &fakeAdminsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.u }
func (m *fakeRepoManager) Scammers(db dbx.DBTX) scammersrepo.Repository       { return m.s }
func (m *fakeRepoManager) Guarantors(db dbx.DBTX) guarantorsrepo.Repository   { return m.g }
func (m *fakeRepoManager) Admins(db dbx.DBTX) adminsrepo.Repository           { return m.a }
