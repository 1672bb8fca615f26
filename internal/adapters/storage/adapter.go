package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-book/pkg/storage"
)

// SQLExecutor is the subset of database/sql (and bun.DB) behaviour the adapter
// relies on. bun.DB satisfies it directly.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// SQLStorageAdapter exposes a relational database through the storage.Provider
// contract so migration and maintenance workflows can run against bun-managed
// connections.
type SQLStorageAdapter struct {
	db SQLExecutor
}

// NewSQLStorageAdapter wraps db in a storage.Provider.
func NewSQLStorageAdapter(db SQLExecutor) storage.Provider {
	return &SQLStorageAdapter{db: db}
}

func (a *SQLStorageAdapter) Query(ctx context.Context, query string, args ...any) (storage.Rows, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	return &sqlRows{rows: rows}, nil
}

func (a *SQLStorageAdapter) Exec(ctx context.Context, query string, args ...any) (storage.Result, error) {
	result, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlResult{Result: result}, nil
}

func (a *SQLStorageAdapter) Transaction(ctx context.Context, fn func(tx storage.Transaction) error) error {
	if fn == nil {
		return nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	wrapped := &sqlTx{tx: tx}
	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed after error %w: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRows) Close() error {
	return r.rows.Close()
}

type sqlResult struct {
	sql.Result
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Query(ctx context.Context, query string, args ...any) (storage.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	return &sqlRows{rows: rows}, nil
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (storage.Result, error) {
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlResult{Result: result}, nil
}

func (t *sqlTx) Transaction(context.Context, func(storage.Transaction) error) error {
	return errors.New("nested transactions not supported")
}

func (t *sqlTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}
