package main

import (
	"context"
	"testing"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
)

type stubImportService struct {
	importCalls int
	importDir   string
	importOpts  interfaces.ImportOptions
}

func (s *stubImportService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubImportService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return nil, nil
}

func (s *stubImportService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubImportService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubImportService) Import(context.Context, *interfaces.Document, interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	return nil, nil
}

func (s *stubImportService) ImportDirectory(_ context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	s.importCalls++
	s.importDir = dir
	s.importOpts = opts
	return &interfaces.ImportResult{}, nil
}

func (s *stubImportService) Sync(context.Context, string, interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	return nil, nil
}

func TestRunImportUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubImportService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Markdown: svc,
			Logger:   logging.NoOp(),
		}, nil
	}

	if err := runImport([]string{
		"-directory", "chapters",
		"-author", "operator",
		"-publish",
	}); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}
	if svc.importCalls != 1 {
		t.Fatalf("expected import to be called once, got %d", svc.importCalls)
	}
	if svc.importDir != "chapters" {
		t.Fatalf("expected import directory chapters, got %s", svc.importDir)
	}
	if svc.importOpts.AuthorID != "operator" {
		t.Fatalf("expected author operator, got %s", svc.importOpts.AuthorID)
	}
	if !svc.importOpts.Publish {
		t.Fatal("expected publish flag to propagate")
	}
}

func TestRunImportRequiresMarkdownService(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Logger: logging.NoOp()}, nil
	}

	if err := runImport([]string{"-directory", "chapters"}); err == nil {
		t.Fatal("expected an error when the markdown service is missing")
	}
}
