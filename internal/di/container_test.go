package di

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-book/chapters"
	internalchapters "github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/generator"
	"github.com/goliatone/go-book/internal/runtimeconfig"
	"github.com/goliatone/go-book/pkg/interfaces"
	"github.com/goliatone/go-book/pkg/testsupport"
)

func TestNewContainerDefaults(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if c.ChapterService() == nil {
		t.Fatal("expected chapter service")
	}
	if c.MarkdownService() != nil {
		t.Fatal("expected markdown service to be nil when feature is off")
	}
	if c.LintService() != nil {
		t.Fatal("expected lint service to be nil when feature is off")
	}

	_, err = c.GeneratorService().Build(context.Background(), generator.BuildOptions{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected disabled generator, got %v", err)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = true

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}
}

func TestNewContainerWiresMarkdown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "getting-started.md")
	content := "---\ntitle: Getting Started\n---\n\nBody.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	cfg.Markdown.SourceDir = dir

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	svc := c.MarkdownService()
	if svc == nil {
		t.Fatal("expected markdown service")
	}

	result, err := svc.ImportDirectory(context.Background(), ".", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.CreatedSlugs) != 1 {
		t.Fatalf("expected one imported chapter, got %v", result.CreatedSlugs)
	}

	record, err := c.ChapterService().GetBySlug(context.Background(), result.CreatedSlugs[0])
	if err != nil {
		t.Fatalf("lookup imported chapter: %v", err)
	}
	if record.Title != "Getting Started" {
		t.Fatalf("unexpected title %q", record.Title)
	}
}

func TestNewContainerWiresLint(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Lint = true
	cfg.Lint.Enabled = true

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if c.LintService() == nil {
		t.Fatal("expected lint service")
	}
}

func TestNewContainerGeneratorEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Generator = true
	cfg.Generator.Enabled = true
	cfg.Generator.CleanBuild = false

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	result, err := c.GeneratorService().Build(context.Background(), generator.BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result == nil {
		t.Fatal("expected build result")
	}
}

func TestWithChapterServiceOverride(t *testing.T) {
	override := chaptersStub{}
	c, err := NewContainer(runtimeconfig.DefaultConfig(), WithChapterService(override))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := c.ChapterService().(chaptersStub); !ok {
		t.Fatal("expected chapter service override to win")
	}
}

type chaptersStub struct {
	chapters.Service
}

func TestWithSQLDBEnablesBunRepositories(t *testing.T) {
	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer sqldb.Close()

	c, err := NewContainer(runtimeconfig.DefaultConfig(), WithSQLDB(sqldb))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	if _, ok := c.ChapterRepository().(*internalchapters.BunChapterRepository); !ok {
		t.Fatalf("expected bun-backed chapter repository, got %T", c.ChapterRepository())
	}
	if _, ok := c.PartRepository().(*internalchapters.BunPartRepository); !ok {
		t.Fatalf("expected bun-backed part repository, got %T", c.PartRepository())
	}
}

func TestNewContainerAppliesMetadataSchema(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.MetadataSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"audience": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	ctx := context.Background()
	_, err = c.ChapterService().Create(ctx, chapters.CreateChapterRequest{
		Slug:     "schema-check",
		Title:    "Schema Check",
		Metadata: map[string]any{"audience": 12},
	})
	if !errors.Is(err, chapters.ErrMetadataInvalid) {
		t.Fatalf("expected metadata rejection, got %v", err)
	}

	if _, err := c.ChapterService().Create(ctx, chapters.CreateChapterRequest{
		Slug:     "schema-check",
		Title:    "Schema Check",
		Metadata: map[string]any{"audience": "beginners"},
	}); err != nil {
		t.Fatalf("expected conforming metadata to pass, got %v", err)
	}
}

func TestNewContainerRejectsBrokenMetadataSchema(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.MetadataSchema = map[string]any{"type": 42}

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected uncompilable metadata schema to fail container build")
	}
}
