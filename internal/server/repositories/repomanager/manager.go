package repomanager

import (
	"context"
	"database/sql"

	"github.com/shelfkeeper/shelfkeeper/internal/dbx"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/categories"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/products"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/refreshtokens"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/suppliers"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/transactions"
	"github.com/shelfkeeper/shelfkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Categories(db dbx.DBTX) categories.Repository
	Suppliers(db dbx.DBTX) suppliers.Repository
	Products(db dbx.DBTX) products.Repository
	Transactions(db dbx.DBTX) transactions.Repository
}
