package markdown

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-book/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "basics/getting-started.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Part != "basics" {
		t.Fatalf("expected part basics, got %s", doc.Part)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if len(doc.Snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(doc.Snippets))
	}
}

func TestServiceLoadDirectory_MixedParts(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	parts := map[string]int{}
	var foundAdvanced bool
	for _, doc := range docs {
		parts[doc.Part]++
		if filepath.Ext(doc.FilePath) != ".md" {
			t.Fatalf("expected markdown file, got %s", doc.FilePath)
		}
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
		if doc.FilePath == "advanced/metaprogramming.md" {
			foundAdvanced = true
		}
	}

	if parts["basics"] != 2 || parts["advanced"] != 1 {
		t.Fatalf("unexpected part distribution: %#v", parts)
	}
	if !foundAdvanced {
		t.Fatalf("expected to include advanced/metaprogramming.md")
	}
}

func TestServiceLoadDirectory_NonRecursiveOverride(t *testing.T) {
	svc := newTestService(t, true)

	no := false
	docs, err := svc.LoadDirectory(context.Background(), "basics", interfaces.LoadOptions{
		Recursive: &no,
	})
	if err != nil {
		t.Fatalf("LoadDirectory override: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Part != "basics" {
			t.Fatalf("expected basics part, got %s", doc.Part)
		}
	}
}

func TestServiceLoadDirectory_PartPatternOverride(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), "advanced", interfaces.LoadOptions{
		PartPatterns: map[string]string{
			"expert": "advanced/*.md",
		},
	})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].Part != "expert" {
		t.Fatalf("expected pattern override to win, got %s", docs[0].Part)
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	baseCfg := Config{
		BasePath:  filepath.Join("testdata", "book"),
		Parts:     []string{"basics", "advanced"},
		Pattern:   "*.md",
		Recursive: recursive,
	}

	svc, err := NewService(baseCfg, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
