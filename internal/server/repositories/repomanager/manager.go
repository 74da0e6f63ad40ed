package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bankd/internal/dbx"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/bankd/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories against one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
