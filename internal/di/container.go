package di

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-book/internal/adapters/noop"
	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/generator"
	"github.com/goliatone/go-book/internal/lint"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/internal/logging/gologger"
	"github.com/goliatone/go-book/internal/markdown"
	"github.com/goliatone/go-book/internal/runtimeconfig"
	"github.com/goliatone/go-book/internal/util"
	"github.com/goliatone/go-book/internal/validation"
	"github.com/goliatone/go-book/pkg/interfaces"
	pkgstorage "github.com/goliatone/go-book/pkg/storage"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Services default to in-memory
// implementations so the module works without external infrastructure.
type Container struct {
	Config runtimeconfig.Config

	loggers  interfaces.LoggerProvider
	storage  interfaces.StorageProvider
	template interfaces.TemplateRenderer
	assets   generator.AssetResolver

	bunDB         *bun.DB
	sqlDB         *sql.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	chapterRepo chapters.ChapterRepository
	partRepo    chapters.PartRepository

	routeManager *urlkit.RouteManager

	chapterSvc   chapters.Service
	markdownSvc  interfaces.MarkdownService
	lintSvc      interfaces.LintService
	generatorSvc generator.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithStorage overrides the default storage provider.
func WithStorage(sp interfaces.StorageProvider) Option {
	return func(c *Container) {
		c.storage = sp
	}
}

// WithTemplate overrides the default template renderer.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithAssetResolver overrides the asset resolver used during site builds.
func WithAssetResolver(resolver generator.AssetResolver) Option {
	return func(c *Container) {
		c.assets = resolver
	}
}

// WithLoggerProvider overrides the logger provider resolved from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggers = provider
	}
}

// WithCache overrides the default cache service bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB switches the catalog repositories to bun-backed implementations.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB wires a database/sql connection, deriving the bun dialect from
// the configured storage DSN.
func WithSQLDB(sqldb *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = sqldb
	}
}

// WithChapterService overrides the default chapter catalog service binding.
func WithChapterService(svc chapters.Service) Option {
	return func(c *Container) {
		c.chapterSvc = svc
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithLintService overrides the default lint service binding.
func WithLintService(svc interfaces.LintService) Option {
	return func(c *Container) {
		c.lintSvc = svc
	}
}

// WithGeneratorService overrides the default generator service binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// WithRouteManager overrides the route manager used for chapter URL resolution.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:      cfg,
		storage:     noop.Storage(),
		template:    noop.Template(),
		cacheTTL:    cacheTTL,
		chapterRepo: chapters.NewMemoryChapterRepository(),
		partRepo:    chapters.NewMemoryPartRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRoutes()

	if c.chapterSvc == nil {
		svcOpts := []chapters.ServiceOption{
			chapters.WithLogger(logging.ChaptersLogger(c.loggers)),
		}
		if schema := c.Config.Markdown.MetadataSchema; len(schema) > 0 {
			if err := validation.ValidateSchema(schema); err != nil {
				return nil, fmt.Errorf("di: chapter metadata schema: %w", err)
			}
			svcOpts = append(svcOpts, chapters.WithMetadataSchema(schema))
		}
		c.chapterSvc = chapters.NewService(c.chapterRepo, c.partRepo, svcOpts...)
	}

	if c.markdownSvc == nil && c.Config.Features.Markdown && c.Config.Markdown.Enabled {
		svc, err := c.buildMarkdownService()
		if err != nil {
			return nil, err
		}
		c.markdownSvc = svc
	}

	if c.lintSvc == nil && c.Config.Features.Lint && c.Config.Lint.Enabled {
		svc, err := c.buildLintService()
		if err != nil {
			return nil, err
		}
		c.lintSvc = svc
	}

	if c.generatorSvc == nil {
		if c.Config.Features.Generator && c.Config.Generator.Enabled {
			c.generatorSvc = c.buildGeneratorService()
		} else {
			c.generatorSvc = generator.NewDisabledService()
		}
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggers != nil || !c.Config.Features.Logger {
		return
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    resolveLoggingFormat(c.Config.Logging),
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return
	}
	c.loggers = provider
}

func resolveLoggingFormat(cfg runtimeconfig.LoggingConfig) string {
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") {
		return "console"
	}
	return cfg.Format
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || !c.Config.Features.Cache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil && c.sqlDB != nil {
		c.bunDB = pkgstorage.NewBunDB(c.sqlDB, c.Config.Storage.DSN)
	}
	if c.bunDB == nil {
		return
	}
	c.chapterRepo = chapters.NewBunChapterRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.partRepo = chapters.NewBunPartRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRoutes() {
	if c.routeManager != nil {
		return
	}
	if c.Config.Routes.RouteConfig != nil {
		c.routeManager = urlkit.NewRouteManager(c.Config.Routes.RouteConfig)
		return
	}
	c.routeManager = generator.NewRouteManager()
}

func (c *Container) buildMarkdownService() (interfaces.MarkdownService, error) {
	importer := markdown.NewImporter(markdown.ImporterConfig{
		Chapters: c.chapterSvc,
		Logger:   logging.MarkdownLogger(c.loggers),
	})

	return markdown.NewService(markdown.Config{
		BasePath:     c.Config.Markdown.SourceDir,
		Parts:        c.Config.Markdown.Parts,
		PartPatterns: c.Config.Markdown.PartPatterns,
		Pattern:      c.Config.Markdown.Pattern,
		Recursive:    c.Config.Markdown.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Parser.Extensions,
			Sanitize:   c.Config.Markdown.Parser.Sanitize,
			HardWraps:  c.Config.Markdown.Parser.HardWraps,
			SafeMode:   c.Config.Markdown.Parser.SafeMode,
		},
	}, nil, markdown.WithImporter(importer))
}

func (c *Container) buildLintService() (interfaces.LintService, error) {
	cfg := lint.DefaultConfig()
	if path := strings.TrimSpace(c.Config.Lint.ConfigPath); path != "" {
		loaded, err := lint.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(c.Config.Lint.Languages) > 0 {
		cfg.Languages = c.Config.Lint.Languages
	}
	if len(c.Config.Lint.AllowedTags) > 0 {
		cfg.AllowedTags = c.Config.Lint.AllowedTags
	}

	root := util.FirstNonEmpty(strings.TrimSpace(c.Config.Markdown.SourceDir), ".")

	loader := markdown.NewLoader(os.DirFS(root), markdown.LoaderConfig{
		Parts:        c.Config.Markdown.Parts,
		PartPatterns: util.CloneStringMap(c.Config.Markdown.PartPatterns),
		Pattern:      c.Config.Markdown.Pattern,
		Recursive:    c.Config.Markdown.Recursive,
	})

	return lint.NewService(cfg, loader,
		lint.WithLogger(logging.LintLogger(c.loggers)),
	), nil
}

func (c *Container) buildGeneratorService() generator.Service {
	gcfg := c.Config.Generator

	baseURL := util.FirstNonEmpty(strings.TrimSpace(gcfg.BaseURL), strings.TrimSpace(c.Config.BaseURL))

	theming := generator.ThemingConfig{}
	if c.Config.Features.Themes && strings.TrimSpace(c.Config.Themes.DefaultTheme) != "" {
		theming = generator.ThemingConfig{
			Name:    c.Config.Themes.DefaultTheme,
			Variant: c.Config.Themes.Variant,
			Path:    filepath.Join(c.Config.Themes.BasePath, c.Config.Themes.DefaultTheme),
		}
	}

	assets := c.assets
	if assets == nil && gcfg.CopyAssets && theming.Name != "" {
		assets = generator.NewDirAssetResolver(theming.Path)
	}

	return generator.NewService(generator.Config{
		OutputDir:       gcfg.OutputDir,
		BaseURL:         baseURL,
		SiteTitle:       c.Config.Title,
		Languages:       c.Config.Languages,
		CleanBuild:      gcfg.CleanBuild,
		Incremental:     gcfg.Incremental,
		CopyAssets:      gcfg.CopyAssets,
		GenerateSitemap: gcfg.GenerateSitemap,
		GenerateRobots:  gcfg.GenerateRobots,
		Workers:         gcfg.Workers,
		Theming:         theming,
	}, generator.Dependencies{
		Chapters: c.chapterSvc,
		Renderer: c.template,
		Storage:  c.storage,
		Assets:   assets,
		Routes:   c.routeManager,
		Logger:   logging.GeneratorLogger(c.loggers),
	})
}

// LoggerProvider exposes the configured logger provider. May be nil when the
// logger feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggers
}

// StorageProvider exposes the configured storage implementation.
func (c *Container) StorageProvider() interfaces.StorageProvider {
	return c.storage
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// RouteManager exposes the route manager used for chapter URL resolution.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// ChapterRepository exposes the configured chapter repository.
func (c *Container) ChapterRepository() chapters.ChapterRepository {
	return c.chapterRepo
}

// PartRepository exposes the configured part repository.
func (c *Container) PartRepository() chapters.PartRepository {
	return c.partRepo
}

// ChapterService returns the configured chapter catalog service.
func (c *Container) ChapterService() chapters.Service {
	return c.chapterSvc
}

// MarkdownService returns the configured markdown service, or nil when the
// feature is disabled.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// LintService returns the configured lint service, or nil when the feature is
// disabled.
func (c *Container) LintService() interfaces.LintService {
	return c.lintSvc
}

// GeneratorService returns the configured generator service. A disabled
// generator still satisfies the contract and returns ErrServiceDisabled.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}
