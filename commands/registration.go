package commands

import (
	"errors"

	internalcmd "github.com/goliatone/go-book/internal/commands"
	lintcmd "github.com/goliatone/go-book/internal/commands/lint"
	markdowncmd "github.com/goliatone/go-book/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-book/internal/commands/static"
	"github.com/goliatone/go-book/internal/di"
	"github.com/goliatone/go-book/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// CommandLogger builds a module-scoped logger shared by command handlers.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	return internalcmd.CommandLogger(provider, module)
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return CommandLogger(provider, module)
	}

	// Markdown ingestion commands.
	if service := container.MarkdownService(); service != nil && cfg.Features.Markdown {
		gates := markdowncmd.FeatureGates{
			MarkdownEnabled: func() bool { return cfg.Features.Markdown },
		}
		handlerSet, err := markdowncmd.RegisterMarkdownCommands(nil, service, provider, gates)
		if err != nil {
			errs = errors.Join(errs, err)
		} else if handlerSet != nil {
			register(handlerSet.Import)
			register(handlerSet.Sync)
		}
	}

	// Lint commands.
	if service := container.LintService(); service != nil && cfg.Features.Lint {
		gates := lintcmd.FeatureGates{
			LintEnabled: func() bool { return cfg.Features.Lint },
		}
		register(lintcmd.NewLintBookHandler(service, loggerFor("lint"), gates))
	}

	// Static generator commands.
	if service := container.GeneratorService(); service != nil && cfg.Generator.Enabled {
		gates := staticcmd.FeatureGates{
			GeneratorEnabled: func() bool { return cfg.Generator.Enabled },
		}
		staticLogger := loggerFor("static")
		register(staticcmd.NewBuildSiteHandler(service, staticLogger, gates))
		register(staticcmd.NewCleanSiteHandler(service, staticLogger, gates))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
