package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/admins"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/guarantors"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/scammers"
	"github.com/dmitrijs2005/trustbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/trustbot/internal/dbx"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// hand the same *sql.Tx to several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Scammers(db dbx.DBTX) scammers.Repository
	Guarantors(db dbx.DBTX) guarantors.Repository
	Admins(db dbx.DBTX) admins.Repository
}
