package storage

import (
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewBunDB wraps sqldb in a bun.DB, selecting the SQL dialect from the DSN
// scheme. Postgres DSNs get pgdialect; everything else falls back to sqlite,
// which covers the in-memory and file-backed development setups.
func NewBunDB(sqldb *sql.DB, dsn string) *bun.DB {
	dsn = strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return bun.NewDB(sqldb, pgdialect.New())
	}
	return bun.NewDB(sqldb, sqlitedialect.New())
}
