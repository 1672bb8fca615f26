package main

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	lintcmd "github.com/goliatone/go-book/internal/commands/lint"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
)

type stubLintService struct {
	lintCalls int
	lintDir   string
	report    *interfaces.LintReport
}

func (s *stubLintService) LintDocument(context.Context, *interfaces.Document, []byte) (*interfaces.LintReport, error) {
	return s.report, nil
}

func (s *stubLintService) LintDirectory(_ context.Context, dir string) (*interfaces.LintReport, error) {
	s.lintCalls++
	s.lintDir = dir
	return s.report, nil
}

func withStubLint(t *testing.T, report *interfaces.LintReport) *stubLintService {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	svc := &stubLintService{report: report}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Lint:   svc,
			Logger: logging.NoOp(),
		}, nil
	}
	return svc
}

func TestRunLintCleanDirectory(t *testing.T) {
	svc := withStubLint(t, &interfaces.LintReport{Files: 2})

	if err := runLint([]string{"-directory", "chapters"}); err != nil {
		t.Fatalf("runLint returned error: %v", err)
	}
	if svc.lintCalls != 1 {
		t.Fatalf("expected lint to be called once, got %d", svc.lintCalls)
	}
	if svc.lintDir != "chapters" {
		t.Fatalf("expected lint directory chapters, got %s", svc.lintDir)
	}
}

func TestRunLintFailsOnErrors(t *testing.T) {
	withStubLint(t, &interfaces.LintReport{
		Files:  1,
		Errors: 2,
		Diagnostics: []interfaces.Diagnostic{
			{Rule: "fence-closed", File: "basics/broken.md", Line: 10, Message: "unterminated code fence"},
		},
	})

	err := runLint([]string{"-directory", "chapters"})
	if err == nil {
		t.Fatal("expected lint failure for a report with errors")
	}
	if !errors.Is(err, lintcmd.ErrLintFailed) {
		t.Fatalf("expected ErrLintFailed, got %v", err)
	}
}

func TestRunLintFailsOnWarningsWhenRequested(t *testing.T) {
	withStubLint(t, &interfaces.LintReport{Files: 1, Warnings: 1})

	if err := runLint([]string{"-directory", "chapters"}); err != nil {
		t.Fatalf("warnings alone should not fail: %v", err)
	}
	if err := runLint([]string{"-directory", "chapters", "-fail-on-warnings"}); err == nil {
		t.Fatal("expected failure when warnings are promoted")
	}
}
