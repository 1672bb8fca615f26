package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across documents so hosts can share a
// single configured parser without extra locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows used across the book engine:
// loading chapter documents, converting them into HTML, and synchronising
// them with the chapter catalog.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Import(ctx context.Context, doc *Document, opts ImportOptions) (*ImportResult, error)
	ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error)
	Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error)
}

// Document represents a chapter file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	Part         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Snippets     []Snippet
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so sync workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// Snippet captures a fenced code block extracted from a chapter body. Line
// numbers are 1-based and refer to the Markdown body after frontmatter
// removal unless WholeFile positioning is requested at extraction time.
type Snippet struct {
	Language string
	Info     string
	Source   string
	Line     int
}

// FrontMatter models metadata extracted from chapter files. Fields cover the
// canonical book layout (chapter number, part, language tracks) and remain
// flexible thanks to the Custom map for theme- or book-specific values.
type FrontMatter struct {
	Title     string         `yaml:"title" json:"title"`
	Slug      string         `yaml:"slug" json:"slug"`
	Summary   string         `yaml:"summary" json:"summary"`
	Status    string         `yaml:"status" json:"status"`
	Chapter   int            `yaml:"chapter" json:"chapter"`
	Part      string         `yaml:"part" json:"part"`
	Weight    int            `yaml:"weight" json:"weight"`
	Tags      []string       `yaml:"tags" json:"tags"`
	Languages []string       `yaml:"languages" json:"languages"`
	Author    string         `yaml:"author" json:"author"`
	Date      time.Time      `yaml:"date" json:"date"`
	Draft     bool           `yaml:"draft" json:"draft"`
	Custom    map[string]any `yaml:",inline" json:"custom"`
	Raw       map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive    *bool
	Pattern      string
	PartPatterns map[string]string
	Parser       ParseOptions
}

// ImportOptions controls how chapter documents are converted into catalog
// records. AuthorID references the operator recorded on created chapters.
type ImportOptions struct {
	AuthorID  string
	DryRun    bool
	Publish   bool
	SkipDraft bool
}

// SyncOptions extends ImportOptions to handle update/delete semantics for
// repeated synchronisation runs.
type SyncOptions struct {
	ImportOptions
	DeleteOrphaned bool
	UpdateExisting bool
}

// ImportResult reports the outcome of a single import operation, exposing
// counts and slugs so callers can audit behaviour or trigger follow-up actions.
type ImportResult struct {
	CreatedSlugs []string
	UpdatedSlugs []string
	SkippedSlugs []string
	Errors       []error
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
