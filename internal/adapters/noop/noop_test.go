package noop

import (
	"context"
	"testing"
)

func TestTemplateRendersEmpty(t *testing.T) {
	out, err := Template().RenderTemplate("chapter", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestStorageAcceptsOperations(t *testing.T) {
	provider := Storage()
	if _, err := provider.Exec(context.Background(), "generator.write", "dist/index.html"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	rows, err := provider.Query(context.Background(), "generator.read", "dist/index.html")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rows != nil {
		t.Fatal("expected nil rows from noop storage")
	}
}
