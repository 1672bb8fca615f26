package generator

import (
	"strings"
	"time"

	"github.com/goliatone/go-book/internal/chapters"
	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
)

// TemplateContext captures the data contract passed to TemplateRenderer implementations.
type TemplateContext struct {
	Site    SiteMetadata
	Chapter ChapterRenderingContext
	TOC     []TOCPart
	Build   BuildMetadata
	Theme   ThemeContext
	Helpers TemplateHelpers
}

// SiteMetadata exposes book-wide information required by templates.
type SiteMetadata struct {
	Title     string
	BaseURL   string
	Languages []string
	Metadata  map[string]any
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Options     BuildOptions
}

// ChapterRenderingContext contains the resolved dependencies for a single
// chapter page. It is zero-valued when the index page is being rendered.
type ChapterRenderingContext struct {
	Chapter  *chapters.Chapter
	Part     *chapters.Part
	Route    string
	Metadata DependencyMetadata
}

// DependencyMetadata carries the change-detection inputs for one page.
type DependencyMetadata struct {
	Hash         string
	LastModified time.Time
}

// TOCPart groups the table-of-contents entries belonging to one part.
type TOCPart struct {
	Code    string
	Title   string
	Weight  int
	Entries []TOCEntry
}

// TOCEntry is a single chapter reference in the table of contents.
type TOCEntry struct {
	Slug    string
	Title   string
	Summary string
	Number  int
	Route   string
}

// ThemeContext surfaces go-theme selection data to templates.
type ThemeContext struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	part    string
	baseURL string
}

func newTemplateHelpers(part string, baseURL string) TemplateHelpers {
	return TemplateHelpers{
		part:    strings.TrimSpace(part),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Part returns the part code of the chapter being rendered, if any.
func (h TemplateHelpers) Part() string {
	return h.part
}

// IsPart reports whether the provided part code matches the active chapter's part.
func (h TemplateHelpers) IsPart(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), h.part)
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

func buildThemeContext(selection *gotheme.Selection, cfg ThemingConfig) ThemeContext {
	empty := ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}
	if selection == nil {
		return empty
	}

	return ThemeContext{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(cfg.CSSVariablePrefix),
		Partials:  selection.Partials(cfg.PartialFallbacks),
		AssetURL:  func(key string) string { url, _ := selection.Asset(key); return url },
		Template:  selection.Template,
		Selection: selection,
	}
}

// RenderedPage captures the rendered HTML output for a chapter or index page.
type RenderedPage struct {
	ChapterID uuid.UUID
	Slug      string
	Part      string
	Route     string
	Output    string
	Template  string
	HTML      string
	Metadata  DependencyMetadata
	Duration  time.Duration
	Checksum  string
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	ChapterID uuid.UUID
	Slug      string
	Part      string
	Route     string
	Template  string
	Duration  time.Duration
	Skipped   bool
	Err       error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}
