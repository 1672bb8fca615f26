package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-book/pkg/interfaces"
)

const (
	rootModule      = "book"
	chaptersModule  = "book.chapters"
	markdownModule  = "book.markdown"
	lintModule      = "book.lint"
	generatorModule = "book.generator"
)

const (
	fieldChapterPath = "chapter_path"
	fieldChapterPart = "part"
	fieldSyncAction  = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ChaptersLogger returns the logger namespace reserved for catalog services.
func ChaptersLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, chaptersModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// LintLogger returns the logger namespace reserved for lint runs.
func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

// GeneratorLogger returns the logger namespace reserved for site builds.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithChapterContext enriches the provided logger with common chapter fields
// such as file path, part, and sync action. Empty values are ignored.
func WithChapterContext(logger interfaces.Logger, path, part, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldChapterPath] = trimmed
	}
	if trimmed := strings.TrimSpace(part); trimmed != "" {
		fields[fieldChapterPart] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldSyncAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
