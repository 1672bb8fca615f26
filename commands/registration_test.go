package commands

import (
	"os"
	"path/filepath"
	"testing"

	book "github.com/goliatone/go-book"
	lintcmd "github.com/goliatone/go-book/internal/commands/lint"
	markdowncmd "github.com/goliatone/go-book/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-book/internal/commands/static"
	"github.com/goliatone/go-book/internal/di"
)

type fakeRegistry struct {
	handlers []any
}

func (f *fakeRegistry) RegisterCommand(handler any) error {
	f.handlers = append(f.handlers, handler)
	return nil
}

func newTestContainer(t *testing.T, mutate func(*book.Config)) *di.Container {
	t.Helper()
	cfg := book.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsNoFeatures(t *testing.T) {
	container := newTestContainer(t, nil)

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err == nil {
		t.Fatal("expected error when no handlers can be registered")
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(result.Handlers))
	}
}

func TestRegisterContainerCommandsLintAndStatic(t *testing.T) {
	container := newTestContainer(t, func(cfg *book.Config) {
		cfg.Features.Lint = true
		cfg.Lint.Enabled = true
		cfg.Features.Generator = true
		cfg.Generator.Enabled = true
	})

	registry := &fakeRegistry{}
	result, err := RegisterContainerCommands(container, RegistrationOptions{Registry: registry})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(result.Handlers) != 3 {
		t.Fatalf("expected lint, build, and clean handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != 3 {
		t.Fatalf("expected registry to record three handlers, got %d", len(registry.handlers))
	}

	var lintSeen, buildSeen, cleanSeen bool
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *lintcmd.LintBookHandler:
			lintSeen = true
		case *staticcmd.BuildSiteHandler:
			buildSeen = true
		case *staticcmd.CleanSiteHandler:
			cleanSeen = true
		}
	}
	if !lintSeen || !buildSeen || !cleanSeen {
		t.Fatalf("missing expected handler types: lint=%v build=%v clean=%v", lintSeen, buildSeen, cleanSeen)
	}
}

func TestRegisterContainerCommandsMarkdown(t *testing.T) {
	dir := t.TempDir()
	fixture := "---\ntitle: Getting Started\n---\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "getting-started.md"), []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	container := newTestContainer(t, func(cfg *book.Config) {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
		cfg.Markdown.SourceDir = dir
	})

	result, err := RegisterContainerCommands(container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(result.Handlers) != 2 {
		t.Fatalf("expected import and sync handlers, got %d", len(result.Handlers))
	}

	if _, ok := result.Handlers[0].(*markdowncmd.ImportDirectoryHandler); !ok {
		t.Fatalf("expected import handler first, got %T", result.Handlers[0])
	}
	if _, ok := result.Handlers[1].(*markdowncmd.SyncDirectoryHandler); !ok {
		t.Fatalf("expected sync handler second, got %T", result.Handlers[1])
	}
}
