// Package repomanager vends repository implementations bound to a database
// handle and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/dbx"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/repositories/claims"
	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/server/repositories/users"
)

// RepositoryManager abstracts repository construction so services can run
// against either *sql.DB or a transaction, and tests can substitute fakes.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Claims(db dbx.DBTX) claims.Repository
}
