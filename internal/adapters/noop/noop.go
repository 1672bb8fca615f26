package noop

import (
	"context"
	"io"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// Template returns a template renderer that bypasses rendering.
func Template() interfaces.TemplateRenderer {
	return templateAdapter{}
}

type templateAdapter struct{}

func (templateAdapter) Render(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RenderTemplate(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (templateAdapter) GlobalContext(any) error {
	return nil
}

// Storage returns a storage provider that accepts every operation and stores nothing.
func Storage() interfaces.StorageProvider {
	return storageAdapter{}
}

type storageAdapter struct{}

func (storageAdapter) Query(context.Context, string, ...any) (interfaces.Rows, error) {
	return nil, nil
}

func (storageAdapter) Exec(context.Context, string, ...any) (interfaces.Result, error) {
	return result{}, nil
}

func (s storageAdapter) Transaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	return fn(tx{provider: s})
}

type result struct{}

func (result) RowsAffected() (int64, error) { return 0, nil }
func (result) LastInsertId() (int64, error) { return 0, nil }

type tx struct {
	provider storageAdapter
}

func (t tx) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	return t.provider.Query(ctx, query, args...)
}

func (t tx) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return t.provider.Exec(ctx, query, args...)
}

func (t tx) Transaction(ctx context.Context, fn func(tx interfaces.Transaction) error) error {
	return fn(t)
}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }
