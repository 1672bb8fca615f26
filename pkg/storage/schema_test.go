package storage

import (
	"strings"
	"testing"
)

func TestValidateConfigAcceptsFilesystemShape(t *testing.T) {
	err := ValidateConfig(Config{
		Name:   "site",
		Driver: "filesystem",
		Root:   "dist",
		Options: map[string]any{
			"clean": true,
		},
	})
	if err != nil {
		t.Fatalf("validate config: %v", err)
	}
}

func TestValidateConfigRequiresNameAndDriver(t *testing.T) {
	err := ValidateConfig(Config{Root: "dist"})
	if err == nil {
		t.Fatal("expected missing name and driver to fail validation")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := ValidateConfig(Config{Name: "site", Driver: "   "}); err == nil {
		t.Fatal("expected blank driver to fail validation")
	}
}
