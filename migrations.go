package book

import (
	"context"
	"embed"

	adapter "github.com/goliatone/go-book/internal/adapters/storage"
	"github.com/goliatone/go-book/internal/migrations"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// RunMigrations applies the embedded catalog schema to db. The executor is
// satisfied by *sql.DB and *bun.DB alike, so hosts can reuse their existing
// connection. Reruns are cheap: applied files are tracked in a ledger table.
func RunMigrations(ctx context.Context, db adapter.SQLExecutor) (int, error) {
	provider := adapter.NewSQLStorageAdapter(db)
	return migrations.Run(ctx, provider, GetMigrationsFS(), "data/sql/migrations")
}
