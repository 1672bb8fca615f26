package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	book "github.com/goliatone/go-book"
	"github.com/goliatone/go-book/internal/di"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
	"github.com/goliatone/go-book/pkg/storage"
)

// DefaultConfigPath is consulted when no explicit config flag is provided.
const DefaultConfigPath = "book.toml"

// Options captures CLI flags shared by the book binaries.
type Options struct {
	ConfigPath  string
	SourceDir   string
	OutputDir   string
	BaseURL     string
	Title       string
	TemplateDir string
	LintConfig  string
	Workers     int
	LogLevel    string

	EnableMarkdown  bool
	EnableLint      bool
	EnableGenerator bool
}

// Module bundles the services a CLI entry point needs after boot.
type Module struct {
	Book      *book.Module
	Chapters  book.ChapterService
	Markdown  interfaces.MarkdownService
	Lint      interfaces.LintService
	Generator book.GeneratorService
	Logger    interfaces.Logger
	Config    book.Config
}

type fileConfig struct {
	Title     string   `toml:"title"`
	BaseURL   string   `toml:"base_url"`
	Languages []string `toml:"languages"`

	Markdown struct {
		SourceDir    string            `toml:"source_dir"`
		Pattern      string            `toml:"pattern"`
		Recursive    *bool             `toml:"recursive"`
		Parts        []string          `toml:"parts"`
		PartPatterns map[string]string `toml:"part_patterns"`
	} `toml:"markdown"`

	Lint struct {
		Config      string   `toml:"config"`
		Languages   []string `toml:"languages"`
		AllowedTags []string `toml:"allowed_tags"`
	} `toml:"lint"`

	Generator struct {
		OutputDir   string `toml:"output_dir"`
		Templates   string `toml:"templates"`
		ThemesDir   string `toml:"themes_dir"`
		Theme       string `toml:"theme"`
		Variant     string `toml:"variant"`
		Workers     int    `toml:"workers"`
		Clean       *bool  `toml:"clean"`
		Incremental *bool  `toml:"incremental"`
		CopyAssets  *bool  `toml:"copy_assets"`
		Sitemap     *bool  `toml:"sitemap"`
		Robots      *bool  `toml:"robots"`
	} `toml:"generator"`

	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"logging"`
}

// BuildModule boots a book module from book.toml plus CLI overrides.
func BuildModule(opts Options) (*Module, error) {
	cfg := book.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Features.Logger = true

	templatesDir, err := applyFileConfig(&cfg, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(&cfg, opts)
	if opts.TemplateDir != "" {
		templatesDir = opts.TemplateDir
	}

	var diOpts []di.Option
	if cfg.Features.Generator {
		renderer, err := newTemplateRenderer(templatesDir)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: template renderer: %w", err)
		}
		storageCfg := storage.Config{
			Name:   "site",
			Driver: "filesystem",
			Root:   cfg.Generator.OutputDir,
		}
		if err := storage.ValidateConfig(storageCfg); err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		diOpts = append(diOpts,
			di.WithTemplate(renderer),
			di.WithStorage(storage.NewFilesystemProvider(storageCfg.Root, cfg.Generator.OutputDir)),
		)
	}

	module, err := book.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: build module: %w", err)
	}

	return &Module{
		Book:      module,
		Chapters:  module.Chapters(),
		Markdown:  module.Markdown(),
		Lint:      module.Lint(),
		Generator: module.Generator(),
		Logger:    logging.ModuleLogger(module.Container().LoggerProvider(), "book.cli"),
		Config:    cfg,
	}, nil
}

func applyFileConfig(cfg *book.Config, path string) (string, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return "", nil
		}
		return "", fmt.Errorf("bootstrap: config %s: %w", path, err)
	}

	var file fileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return "", fmt.Errorf("bootstrap: decode %s: %w", path, err)
	}

	if file.Title != "" {
		cfg.Title = file.Title
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if len(file.Languages) > 0 {
		cfg.Languages = file.Languages
	}

	if file.Markdown.SourceDir != "" {
		cfg.Markdown.SourceDir = file.Markdown.SourceDir
	}
	if file.Markdown.Pattern != "" {
		cfg.Markdown.Pattern = file.Markdown.Pattern
	}
	if file.Markdown.Recursive != nil {
		cfg.Markdown.Recursive = *file.Markdown.Recursive
	}
	if len(file.Markdown.Parts) > 0 {
		cfg.Markdown.Parts = file.Markdown.Parts
	}
	if len(file.Markdown.PartPatterns) > 0 {
		cfg.Markdown.PartPatterns = file.Markdown.PartPatterns
	}

	if file.Lint.Config != "" {
		cfg.Lint.ConfigPath = file.Lint.Config
	}
	if len(file.Lint.Languages) > 0 {
		cfg.Lint.Languages = file.Lint.Languages
	}
	if len(file.Lint.AllowedTags) > 0 {
		cfg.Lint.AllowedTags = file.Lint.AllowedTags
	}

	if file.Generator.OutputDir != "" {
		cfg.Generator.OutputDir = file.Generator.OutputDir
	}
	if file.Generator.Workers > 0 {
		cfg.Generator.Workers = file.Generator.Workers
	}
	if file.Generator.Clean != nil {
		cfg.Generator.CleanBuild = *file.Generator.Clean
	}
	if file.Generator.Incremental != nil {
		cfg.Generator.Incremental = *file.Generator.Incremental
	}
	if file.Generator.CopyAssets != nil {
		cfg.Generator.CopyAssets = *file.Generator.CopyAssets
	}
	if file.Generator.Sitemap != nil {
		cfg.Generator.GenerateSitemap = *file.Generator.Sitemap
	}
	if file.Generator.Robots != nil {
		cfg.Generator.GenerateRobots = *file.Generator.Robots
	}
	if file.Generator.ThemesDir != "" {
		cfg.Themes.BasePath = file.Generator.ThemesDir
	}
	if file.Generator.Theme != "" {
		cfg.Themes.DefaultTheme = file.Generator.Theme
		cfg.Features.Themes = true
	}
	if file.Generator.Variant != "" {
		cfg.Themes.Variant = file.Generator.Variant
	}

	if file.Logging.Level != "" {
		cfg.Logging.Level = file.Logging.Level
	}
	if file.Logging.Format != "" {
		cfg.Logging.Format = file.Logging.Format
	}

	cfg.Generator.BaseURL = cfg.BaseURL
	return file.Generator.Templates, nil
}

func applyOverrides(cfg *book.Config, opts Options) {
	if opts.SourceDir != "" {
		cfg.Markdown.SourceDir = opts.SourceDir
	}
	if opts.OutputDir != "" {
		cfg.Generator.OutputDir = opts.OutputDir
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
		cfg.Generator.BaseURL = opts.BaseURL
	}
	if opts.Title != "" {
		cfg.Title = opts.Title
	}
	if opts.LintConfig != "" {
		cfg.Lint.ConfigPath = opts.LintConfig
	}
	if opts.Workers > 0 {
		cfg.Generator.Workers = opts.Workers
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if opts.EnableMarkdown {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
	}
	if opts.EnableLint {
		cfg.Features.Lint = true
		cfg.Lint.Enabled = true
	}
	if opts.EnableGenerator {
		cfg.Features.Generator = true
		cfg.Generator.Enabled = true
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = cfg.BaseURL
	}
}

// SplitList turns a comma separated flag value into trimmed entries.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
