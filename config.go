package book

import "github.com/goliatone/go-book/internal/runtimeconfig"

var (
	ErrMarkdownFeatureRequired    = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownSourceDirRequired  = runtimeconfig.ErrMarkdownSourceDirRequired
	ErrLintFeatureRequired        = runtimeconfig.ErrLintFeatureRequired
	ErrLintLanguagesRequired      = runtimeconfig.ErrLintLanguagesRequired
	ErrGeneratorOutputDirRequired = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorWorkersInvalid    = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrThemesFeatureRequired      = runtimeconfig.ErrThemesFeatureRequired
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	ThemeConfig          = runtimeconfig.ThemeConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LintConfig           = runtimeconfig.LintConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

// DefaultConfig returns opinionated defaults for an embedded book engine.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
