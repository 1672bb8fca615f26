package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/generator"
	"github.com/goliatone/go-book/pkg/interfaces"
)

const chapterFixture = `---
title: Getting Started
status: published
chapter: 1
---

Opening chapter body.
`

func writeBookFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "chapters")
	if err := os.MkdirAll(filepath.Join(source, "basics"), 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	fixture := filepath.Join(source, "basics", "getting-started.md")
	if err := os.WriteFile(fixture, []byte(chapterFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	config := strings.Join([]string{
		`title = "Comparing Languages"`,
		`base_url = "https://book.example.com"`,
		``,
		`[markdown]`,
		`source_dir = ` + tomlString(source),
		`parts = ["basics", "advanced"]`,
	}, "\n")
	configPath := filepath.Join(dir, "book.toml")
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, source
}

func tomlString(value string) string {
	return `'` + value + `'`
}

func TestBuildModuleAppliesConfigFile(t *testing.T) {
	configPath, _ := writeBookFixture(t)

	mod, err := BuildModule(Options{
		ConfigPath:     configPath,
		EnableMarkdown: true,
		EnableLint:     true,
	})
	if err != nil {
		t.Fatalf("BuildModule returned error: %v", err)
	}
	if mod.Config.Title != "Comparing Languages" {
		t.Fatalf("expected config title to apply, got %q", mod.Config.Title)
	}
	if mod.Markdown == nil {
		t.Fatal("expected markdown service to be configured")
	}
	if mod.Lint == nil {
		t.Fatal("expected lint service to be configured")
	}

	ctx := context.Background()
	result, err := mod.Markdown.ImportDirectory(ctx, ".", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("import fixture directory: %v", err)
	}
	if len(result.CreatedSlugs) != 1 {
		t.Fatalf("expected one created chapter, got %d", len(result.CreatedSlugs))
	}

	chapter, err := mod.Chapters.GetBySlug(ctx, result.CreatedSlugs[0])
	if err != nil {
		t.Fatalf("load imported chapter: %v", err)
	}
	if chapter.Title != "Getting Started" {
		t.Fatalf("expected chapter title from front matter, got %q", chapter.Title)
	}
}

func TestBuildModuleFlagOverridesWin(t *testing.T) {
	configPath, source := writeBookFixture(t)

	mod, err := BuildModule(Options{
		ConfigPath:     configPath,
		SourceDir:      source,
		Title:          "Override Title",
		BaseURL:        "https://staging.example.com",
		EnableMarkdown: true,
	})
	if err != nil {
		t.Fatalf("BuildModule returned error: %v", err)
	}
	if mod.Config.Title != "Override Title" {
		t.Fatalf("expected flag title to win, got %q", mod.Config.Title)
	}
	if mod.Config.Generator.BaseURL != "https://staging.example.com" {
		t.Fatalf("expected generator base URL override, got %q", mod.Config.Generator.BaseURL)
	}
}

func TestBuildModuleMissingExplicitConfigFails(t *testing.T) {
	_, err := BuildModule(Options{
		ConfigPath:     filepath.Join(t.TempDir(), "absent.toml"),
		EnableMarkdown: true,
	})
	if err == nil {
		t.Fatal("expected missing explicit config to fail")
	}
}

func TestDefaultTemplatesRenderChapter(t *testing.T) {
	renderer, err := newTemplateRenderer("")
	if err != nil {
		t.Fatalf("newTemplateRenderer: %v", err)
	}

	data := generator.TemplateContext{
		Site: generator.SiteMetadata{Title: "Comparing Languages"},
		Chapter: generator.ChapterRenderingContext{
			Chapter: &chapters.Chapter{
				Title:    "Getting Started",
				BodyHTML: "<p>Opening chapter body.</p>",
			},
			Route: "/basics/getting-started/",
		},
		Build: generator.BuildMetadata{GeneratedAt: time.Now()},
	}

	html, err := renderer.RenderTemplate("chapter", data)
	if err != nil {
		t.Fatalf("render chapter: %v", err)
	}
	if !strings.Contains(html, "Getting Started") {
		t.Fatalf("expected chapter title in output, got %q", html)
	}
	if !strings.Contains(html, "<p>Opening chapter body.</p>") {
		t.Fatalf("expected raw chapter HTML in output, got %q", html)
	}

	indexHTML, err := renderer.RenderTemplate("index", generator.TemplateContext{
		Site:  generator.SiteMetadata{Title: "Comparing Languages"},
		Build: generator.BuildMetadata{GeneratedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	if !strings.Contains(indexHTML, "Comparing Languages") {
		t.Fatalf("expected site title in index output, got %q", indexHTML)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"basics", []string{"basics"}},
		{"basics, advanced ,", []string{"basics", "advanced"}},
	}
	for _, tc := range cases {
		got := SplitList(tc.input)
		if len(got) != len(tc.want) {
			t.Fatalf("SplitList(%q) = %#v, want %#v", tc.input, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("SplitList(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		}
	}
}
