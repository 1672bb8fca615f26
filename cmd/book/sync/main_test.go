package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
)

type stubSyncService struct {
	syncCalls int
	syncDir   string
	syncOpts  interfaces.SyncOptions
}

func (s *stubSyncService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubSyncService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (s *stubSyncService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubSyncService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubSyncService) Import(context.Context, *interfaces.Document, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return nil, nil
}

func (s *stubSyncService) ImportDirectory(context.Context, string, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return nil, nil
}

func (s *stubSyncService) Sync(_ context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalls++
	s.syncDir = dir
	s.syncOpts = opts
	return &interfaces.SyncResult{}, nil
}

func TestRunSyncUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubSyncService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Markdown: svc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runSync([]string{
		"-directory", "chapters",
		"-delete-orphaned",
	}); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}
	if svc.syncCalls != 1 {
		t.Fatalf("expected sync to be called once, got %d", svc.syncCalls)
	}
	if svc.syncDir != "chapters" {
		t.Fatalf("expected sync directory chapters, got %s", svc.syncDir)
	}
	if !svc.syncOpts.DeleteOrphaned {
		t.Fatal("expected delete-orphaned flag to propagate")
	}
	if !svc.syncOpts.UpdateExisting {
		t.Fatal("expected update-existing to default to true")
	}
}

func TestRunSyncPropagatesBuilderError(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Logger: logging.NoOp()}, nil
	}

	if err := runSync([]string{"-directory", "chapters"}); err == nil {
		t.Fatal("expected an error when the markdown service is missing")
	}
}
