package staticcmd

import (
	"context"
	"strings"

	"github.com/goliatone/go-book/internal/commands"
	"github.com/goliatone/go-book/internal/generator"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

var (
	_ command.Commander[BuildSiteCommand] = (*BuildSiteHandler)(nil)
	_ command.Commander[CleanSiteCommand] = (*CleanSiteHandler)(nil)
)

// BuildSiteHandler orchestrates generator builds using the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}

		options := generator.BuildOptions{
			DryRun: msg.DryRun,
		}
		if len(msg.Parts) > 0 {
			options.Parts = normalizeFilters(msg.Parts)
		}
		if len(msg.Slugs) > 0 {
			options.Slugs = normalizeFilters(msg.Slugs)
		}

		result, err := service.Build(ctx, options)
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"pages_built":   result.PagesBuilt,
				"pages_skipped": result.PagesSkipped,
				"assets_built":  result.AssetsBuilt,
				"error_count":   len(result.Errors),
				"dry_run":       msg.DryRun,
			}).Info("static.command.build.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("static.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Parts) > 0 {
				fields["parts"] = len(msg.Parts)
			}
			if len(msg.Slugs) > 0 {
				fields["slugs"] = len(msg.Slugs)
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generated artifacts through the generator service.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler wired to the provided generator service.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("static.clean"),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func normalizeFilters(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
