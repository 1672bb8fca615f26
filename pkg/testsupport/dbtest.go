package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens an in-memory SQLite database with a shared cache
// so every connection in a test sees the same schema and rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}
