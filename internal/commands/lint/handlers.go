package lintcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-book/internal/commands"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const lintOperation = "lint.run"

var (
	// ErrLintFeatureDisabled is returned when the lint feature flag is disabled at runtime.
	ErrLintFeatureDisabled = errors.New("lint command: feature disabled")
	// ErrLintFailed is returned when a run produces blocking diagnostics.
	ErrLintFailed = errors.New("lint command: checks failed")
)

var _ command.Commander[LintBookCommand] = (*LintBookHandler)(nil)

// LintBookHandler orchestrates lint runs via the shared command handler foundation.
type LintBookHandler struct {
	inner *commands.Handler[LintBookCommand]
}

// NewLintBookHandler creates a handler bound to the supplied lint service.
func NewLintBookHandler(service interfaces.LintService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[LintBookCommand]) *LintBookHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg LintBookCommand) error {
		if service == nil || !gates.lintEnabled() {
			return ErrLintFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := service.LintDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		if report != nil {
			logging.WithFields(baseLogger, map[string]any{
				"files":    report.Files,
				"errors":   report.Errors,
				"warnings": report.Warnings,
			}).Info("lint.command.run.completed")
		}

		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Report: report,
			Metadata: map[string]any{
				"directory": msg.Directory,
			},
		})

		if report.HasErrors() {
			return fmt.Errorf("%w: %d errors across %d files", ErrLintFailed, report.Errors, report.Files)
		}
		if msg.FailOnWarnings && report != nil && report.Warnings > 0 {
			return fmt.Errorf("%w: %d warnings across %d files", ErrLintFailed, report.Warnings, report.Files)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintBookCommand]{
		commands.WithLogger[LintBookCommand](baseLogger),
		commands.WithOperation[LintBookCommand](lintOperation),
		commands.WithMessageFields(func(msg LintBookCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.FailOnWarnings {
				fields["fail_on_warnings"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintBookCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintBookHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintBookCommand].
func (h *LintBookHandler) Execute(ctx context.Context, msg LintBookCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
