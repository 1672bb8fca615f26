package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-book/pkg/storage"
)

const ledgerTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Run applies every .sql file under dir in lexical order, skipping files
// already recorded in the schema_migrations ledger. It returns the number of
// migrations applied during this invocation.
func Run(ctx context.Context, provider storage.Provider, fsys fs.FS, dir string) (int, error) {
	if provider == nil {
		return 0, fmt.Errorf("migrations: storage provider is required")
	}

	if _, err := provider.Exec(ctx, ledgerTable); err != nil {
		return 0, fmt.Errorf("migrations: ensure ledger: %w", err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return 0, fmt.Errorf("migrations: read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		done, err := isApplied(ctx, provider, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		script, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("migrations: read %s: %w", name, err)
		}

		err = provider.Transaction(ctx, func(tx storage.Transaction) error {
			for _, statement := range splitStatements(string(script)) {
				if _, err := tx.Exec(ctx, statement); err != nil {
					return fmt.Errorf("migrations: apply %s: %w", name, err)
				}
			}
			if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES (?)", name); err != nil {
				return fmt.Errorf("migrations: record %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func isApplied(ctx context.Context, provider storage.Provider, name string) (bool, error) {
	rows, err := provider.Query(ctx, "SELECT name FROM schema_migrations WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("migrations: lookup %s: %w", name, err)
	}
	if rows == nil {
		return false, nil
	}
	defer rows.Close()
	return rows.Next(), nil
}

// splitStatements cuts a migration script on every semicolon after dropping
// "--" comment lines. Semicolons inside string literals or trigger bodies are
// not handled; migration files must keep statements free of embedded ";".
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		lines := strings.Split(part, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			kept = append(kept, line)
		}
		statement := strings.TrimSpace(strings.Join(kept, "\n"))
		if statement == "" {
			continue
		}
		out = append(out, statement)
	}
	return out
}
