// Package repomanager provides a concrete RepositoryManager for
// PostgreSQL, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trustbot/internal/bot/migrations"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/admins"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/guarantors"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/scammers"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/trustbot/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed
// RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Scammers returns a scammers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Scammers(db dbx.DBTX) scammers.Repository {
	return scammers.NewPostgresRepository(db)
}

// Guarantors returns a guarantors.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Guarantors(db dbx.DBTX) guarantors.Repository {
	return guarantors.NewPostgresRepository(db)
}

// Admins returns an admins.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Admins(db dbx.DBTX) admins.Repository {
	return admins.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
