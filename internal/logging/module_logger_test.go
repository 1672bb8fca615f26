package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-book/pkg/interfaces"
)

type stubLogger struct {
	fields map[string]any
}

func (s *stubLogger) Trace(string, ...any) {}
func (s *stubLogger) Debug(string, ...any) {}
func (s *stubLogger) Info(string, ...any)  {}
func (s *stubLogger) Warn(string, ...any)  {}
func (s *stubLogger) Error(string, ...any) {}
func (s *stubLogger) Fatal(string, ...any) {}

func (s *stubLogger) WithContext(context.Context) interfaces.Logger { return s }

func (s *stubLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := map[string]any{}
	for k, v := range s.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &stubLogger{fields: merged}
}

type stubProvider struct {
	loggers map[string]interfaces.Logger
}

func (p *stubProvider) GetLogger(name string) interfaces.Logger {
	if logger, ok := p.loggers[name]; ok {
		return logger
	}
	return nil
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &stubProvider{loggers: map[string]interfaces.Logger{
		"book.lint": &stubLogger{},
	}}

	logger := LintLogger(provider)
	stub, ok := logger.(*stubLogger)
	if !ok {
		t.Fatalf("expected stub logger, got %T", logger)
	}
	if stub.fields["module"] != "book.lint" {
		t.Fatalf("expected module field, got %#v", stub.fields)
	}
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Must not panic.
	logger.Info("noop")
}

func TestWithChapterContextSkipsEmptyValues(t *testing.T) {
	base := &stubLogger{}
	logger := WithChapterContext(base, "basics/classes.md", "", "import")
	stub := logger.(*stubLogger)

	if stub.fields[fieldChapterPath] != "basics/classes.md" {
		t.Fatalf("expected chapter path field, got %#v", stub.fields)
	}
	if _, ok := stub.fields[fieldChapterPart]; ok {
		t.Fatalf("empty part should be omitted: %#v", stub.fields)
	}
	if stub.fields[fieldSyncAction] != "import" {
		t.Fatalf("expected sync action field, got %#v", stub.fields)
	}
}

func TestContextFieldsRoundTrip(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"build_id": "abc"})
	ctx = ContextWithFields(ctx, map[string]any{"part": "basics"})

	fields := ContextFields(ctx)
	if fields["build_id"] != "abc" || fields["part"] != "basics" {
		t.Fatalf("unexpected fields: %#v", fields)
	}

	fields["build_id"] = "mutated"
	if ContextFields(ctx)["build_id"] != "abc" {
		t.Fatal("context fields should be copied defensively")
	}
}
