package storage

import "context"

// Provider encapsulates the artifact persistence operations used by the site
// generator. Operations are addressed by op strings (e.g. "generator.write")
// so implementations can route writes to a filesystem, an object store, or an
// in-memory recorder in tests.
type Provider interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Transaction(ctx context.Context, fn func(tx Transaction) error) error
}

// Config captures the runtime configuration for a storage provider. Detailed
// schema validation is handled by higher layers (runtimeconfig).
type Config struct {
	Name     string
	Driver   string
	Root     string
	ReadOnly bool
	Options  map[string]any
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

type Transaction interface {
	Provider
	Commit() error
	Rollback() error
}
