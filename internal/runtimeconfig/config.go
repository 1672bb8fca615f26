package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrMarkdownFeatureRequired indicates markdown configuration without the feature flag.
var ErrMarkdownFeatureRequired = errors.New("book config: markdown feature must be enabled to configure markdown")

// ErrMarkdownSourceDirRequired ensures the chapter root is always configured alongside the feature.
var ErrMarkdownSourceDirRequired = errors.New("book config: markdown source directory is required when markdown is enabled")

// ErrLintFeatureRequired indicates lint configuration without the feature flag.
var ErrLintFeatureRequired = errors.New("book config: lint feature must be enabled to configure lint rules")

// ErrLintLanguagesRequired ensures the linter tracks at least one language.
var ErrLintLanguagesRequired = errors.New("book config: lint requires at least one tracked language")

// ErrGeneratorOutputDirRequired ensures builds always have a destination.
var ErrGeneratorOutputDirRequired = errors.New("book config: generator output directory is required when generator is enabled")

// ErrGeneratorWorkersInvalid rejects negative worker pool sizes.
var ErrGeneratorWorkersInvalid = errors.New("book config: generator worker count must be zero or positive")

// ErrThemesFeatureRequired indicates inconsistent theme configuration.
var ErrThemesFeatureRequired = errors.New("book config: themes feature must be enabled to configure themes")

var ErrLoggingProviderRequired = errors.New("book config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("book config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("book config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("book config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the book module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Title     string
	BaseURL   string
	Languages []string
	Storage   StorageConfig
	Cache     CacheConfig
	Routes    RoutesConfig
	Themes    ThemeConfig
	Features  Features
	Commands  CommandsConfig
	Markdown  MarkdownConfig
	Lint      LintConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures read-through cache behaviour for catalog repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures routing configuration for chapter URL resolution.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	DefaultGroup string
	DefaultRoute string
	SlugParam    string
	PartParam    string
}

// ThemeConfig captures configuration for the themes used during site builds.
type ThemeConfig struct {
	BasePath     string
	DefaultTheme string
	Variant      string
}

// Features toggles module functionality.
type Features struct {
	Markdown  bool
	Lint      bool
	Generator bool
	Themes    bool
	Cache     bool
	Logger    bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// MarkdownConfig captures filesystem and parser behaviour for chapter ingestion.
type MarkdownConfig struct {
	Enabled      bool
	SourceDir    string
	Pattern      string
	Recursive    bool
	PartPatterns map[string]string
	Parts        []string
	Parser       MarkdownParserConfig

	// MetadataSchema, when set, is the JSON schema applied to chapter
	// frontmatter metadata before it is stored in the catalog.
	MetadataSchema map[string]any
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LintConfig captures rule toggles for the book linter.
type LintConfig struct {
	Enabled     bool
	ConfigPath  string
	Languages   []string
	AllowedTags []string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	BaseURL         string
	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	Workers         int
	RenderTimeout   time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded book engine.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Languages: []string{"ruby", "python"},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Themes: ThemeConfig{
			BasePath: "themes",
		},
		Features: Features{},
		Commands: CommandsConfig{},
		Markdown: MarkdownConfig{
			SourceDir:    "chapters",
			Pattern:      "*.md",
			Recursive:    true,
			PartPatterns: map[string]string{},
		},
		Lint: LintConfig{
			Languages:   []string{"ruby", "python"},
			AllowedTags: []string{"ruby", "python", "text", "console", "bash"},
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			Incremental:     false,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  false,
			Workers:         0,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !cfg.Features.Themes {
		if strings.TrimSpace(cfg.Themes.DefaultTheme) != "" {
			return ErrThemesFeatureRequired
		}
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.SourceDir) == "" {
			return ErrMarkdownSourceDirRequired
		}
	}
	if cfg.Lint.Enabled {
		if !cfg.Features.Lint {
			return ErrLintFeatureRequired
		}
		if len(cfg.Lint.Languages) == 0 {
			return ErrLintLanguagesRequired
		}
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if cfg.Generator.Workers < 0 {
			return ErrGeneratorWorkersInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
