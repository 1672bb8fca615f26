package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig selects the go-theme manifest applied to rendered pages.
type ThemingConfig struct {
	Name              string
	Variant           string
	Path              string
	CSSVariablePrefix string
	PartialFallbacks  map[string]string
}

func (c ThemingConfig) enabled() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Path) != ""
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}

	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

type themeSelector struct {
	registry *gotheme.MemoryRegistry
	loader   themeManifestLoader
	cfg      ThemingConfig

	mu       sync.Mutex
	manifest *gotheme.Manifest
}

func newThemeSelector(cfg ThemingConfig, loader themeManifestLoader) *themeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &themeSelector{
		registry: gotheme.NewRegistry(),
		loader:   loader,
		cfg:      cfg,
	}
}

func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	if s == nil || !s.cfg.enabled() {
		return nil, nil
	}

	if _, err := s.ensureManifest(); err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   strings.TrimSpace(s.cfg.Name),
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}

	selection, err := selector.Select(strings.TrimSpace(s.cfg.Name), strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", s.cfg.Name, err)
	}
	return selection, nil
}

func (s *themeSelector) ensureManifest() (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		return s.manifest, nil
	}

	manifest, err := s.loader.Load(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", s.cfg.Path, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" || !strings.EqualFold(normalized.Name, s.cfg.Name) {
		normalized.Name = strings.TrimSpace(s.cfg.Name)
	}
	if normalized.Name == "" {
		return nil, fmt.Errorf("theme name required for manifest registration")
	}

	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifest = &normalized
	return &normalized, nil
}
