package admins

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/trustbot/internal/bot/models"
	"github.com/dmitrijs2005/trustbot/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	addedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "display_name", "added_by", "added_at"}).
		AddRow(int64(5), "mod", int64(1), addedAt)

	mock.ExpectQuery(`(?s)FROM\s+admins\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), 5)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.UserID != 5 || got.DisplayName != "mod" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+admins`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), 999)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestAdd_DuplicateKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rec := &models.AdminRecord{UserID: 5, DisplayName: "mod", AddedBy: 1, AddedAt: time.Now()}

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+admins`).
		WithArgs(rec.UserID, rec.DisplayName, rec.AddedBy, rec.AddedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Add(context.Background(), rec); !errors.Is(err, common.ErrDuplicate) {
		t.Fatalf("want common.ErrDuplicate, got %v", err)
	}
}

func TestEnsure_ExistingRowIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rec := &models.AdminRecord{UserID: 1, DisplayName: "owner", AddedAt: time.Now()}

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+admins.*ON\s+CONFLICT\s*\(user_id\)\s+DO\s+NOTHING`).
		WithArgs(rec.UserID, rec.DisplayName, rec.AddedBy, rec.AddedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Ensure(context.Background(), rec); err != nil {
		t.Fatalf("Ensure error: %v", err)
	}
}

func TestRemove_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+admins`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Remove(context.Background(), 5); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
}

func TestRemove_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+admins`).
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Remove(context.Background(), 999); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
