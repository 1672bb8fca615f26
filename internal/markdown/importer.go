package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/domain"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/internal/util"
	"github.com/goliatone/go-book/pkg/interfaces"
)

var (
	ErrChapterServiceRequired = errors.New("markdown importer: chapter service is required")
	ErrSlugMissing            = errors.New("markdown importer: chapter slug could not be determined")
	ErrDuplicateSlug          = errors.New("markdown importer: multiple files share the same slug")
)

// ImporterConfig encapsulates dependencies required to persist chapter documents.
type ImporterConfig struct {
	Chapters chapters.Service
	Logger   interfaces.Logger
}

// Importer converts loaded chapter documents into catalog records, skipping
// files whose checksum already matches the stored chapter.
type Importer struct {
	chapters chapters.Service
	logger   interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		chapters: cfg.Chapters,
		logger:   logger,
	}
}

// ImportDocument imports a single chapter document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.chapters == nil {
		return nil, ErrChapterServiceRequired
	}
	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, false, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports an arbitrary slice of documents. Files that map to
// the same slug are reported as errors rather than silently overwriting each
// other.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.chapters == nil {
		return nil, ErrChapterServiceRequired
	}

	acc := newImportAccumulator()
	for _, doc := range uniqueBySlug(docs, acc.addError) {
		if err := i.applyDocument(ctx, doc, opts, false, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes
// chapters whose source files no longer exist.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.chapters == nil {
		return nil, ErrChapterServiceRequired
	}

	imports := newImportAccumulator()
	unique := uniqueBySlug(docs, imports.addError)
	for _, doc := range unique {
		if err := i.applyDocument(ctx, doc, opts.ImportOptions, !opts.UpdateExisting, imports); err != nil {
			imports.addError(err)
		}
	}

	acc := newSyncAccumulator()
	acc.merge(imports.result())

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, unique, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, skipExisting bool, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}

	slug := slugFor(doc)
	if slug == "" {
		return ErrSlugMissing
	}

	status := selectStatus(doc, opts)
	if opts.SkipDraft && status == domain.StatusDraft {
		acc.skip(slug)
		return nil
	}

	checksum := hex.EncodeToString(doc.Checksum)

	existing, err := i.chapters.GetBySlug(ctx, slug)
	if err != nil && !chapters.IsNotFound(err) {
		return fmt.Errorf("markdown importer: chapter lookup %s: %w", slug, err)
	}

	if existing == nil {
		if opts.DryRun {
			acc.created(slug)
			return nil
		}
		record, createErr := i.chapters.Create(ctx, buildCreateRequest(doc, slug, status, checksum, opts))
		if createErr != nil {
			return fmt.Errorf("markdown importer: create chapter %s: %w", slug, createErr)
		}
		logging.WithChapterContext(i.logger, doc.FilePath, doc.Part, "import").
			Info("markdown.import.create", "slug", record.Slug)
		acc.created(slug)
		return nil
	}

	if existing.Checksum == checksum {
		acc.skip(slug)
		return nil
	}
	if skipExisting {
		acc.skip(slug)
		return nil
	}
	if opts.DryRun {
		acc.updated(slug)
		return nil
	}

	updated, updateErr := i.chapters.Update(ctx, buildUpdateRequest(existing, doc, status, checksum, opts))
	if updateErr != nil {
		return fmt.Errorf("markdown importer: update chapter %s: %w", slug, updateErr)
	}
	logging.WithChapterContext(i.logger, doc.FilePath, doc.Part, "import").
		Info("markdown.import.update", "slug", updated.Slug)
	acc.updated(slug)
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.chapters.List(ctx)
	if err != nil {
		return fmt.Errorf("markdown importer: list chapters: %w", err)
	}

	present := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		present[slugFor(doc)] = struct{}{}
	}

	for _, record := range existing {
		if _, ok := present[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		deleteReq := chapters.DeleteChapterRequest{
			ID:         record.ID,
			DeletedBy:  opts.AuthorID,
			HardDelete: true,
		}
		if err := i.chapters.Delete(ctx, deleteReq); err != nil {
			return fmt.Errorf("markdown importer: delete chapter %s: %w", record.Slug, err)
		}
		logging.WithChapterContext(i.logger, record.Slug, "", "sync").
			Info("markdown.sync.delete", "slug", record.Slug)
		acc.deleted++
	}

	return nil
}

func buildCreateRequest(doc *interfaces.Document, slug string, status domain.Status, checksum string, opts interfaces.ImportOptions) chapters.CreateChapterRequest {
	return chapters.CreateChapterRequest{
		Slug:      slug,
		Title:     titleFor(doc, slug),
		Summary:   optionalString(doc.FrontMatter.Summary),
		Number:    doc.FrontMatter.Chapter,
		Part:      doc.Part,
		Weight:    doc.FrontMatter.Weight,
		Status:    string(status),
		Body:      string(doc.Body),
		BodyHTML:  string(doc.BodyHTML),
		Checksum:  checksum,
		Tags:      append([]string(nil), doc.FrontMatter.Tags...),
		Languages: append([]string(nil), doc.FrontMatter.Languages...),
		Snippets:  snippetInputs(doc.Snippets),
		Metadata:  documentMetadata(doc),
		CreatedBy: opts.AuthorID,
	}
}

func buildUpdateRequest(existing *chapters.Chapter, doc *interfaces.Document, status domain.Status, checksum string, opts interfaces.ImportOptions) chapters.UpdateChapterRequest {
	return chapters.UpdateChapterRequest{
		ID:        existing.ID,
		Title:     titleFor(doc, existing.Slug),
		Summary:   optionalString(doc.FrontMatter.Summary),
		Number:    doc.FrontMatter.Chapter,
		Part:      doc.Part,
		Weight:    doc.FrontMatter.Weight,
		Status:    string(status),
		Body:      string(doc.Body),
		BodyHTML:  string(doc.BodyHTML),
		Checksum:  checksum,
		Tags:      append([]string(nil), doc.FrontMatter.Tags...),
		Languages: append([]string(nil), doc.FrontMatter.Languages...),
		Snippets:  snippetInputs(doc.Snippets),
		Metadata:  documentMetadata(doc),
		UpdatedBy: opts.AuthorID,
	}
}

func snippetInputs(snippets []interfaces.Snippet) []chapters.SnippetInput {
	if len(snippets) == 0 {
		return nil
	}
	out := make([]chapters.SnippetInput, 0, len(snippets))
	for _, snippet := range snippets {
		out = append(out, chapters.SnippetInput{
			Language: snippet.Language,
			Source:   snippet.Source,
			Line:     snippet.Line,
		})
	}
	return out
}

// slugFor prefers the frontmatter slug and falls back to the file name stem
// so unannotated chapter files still import cleanly.
func slugFor(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	if slug := strings.TrimSpace(doc.FrontMatter.Slug); slug != "" {
		return slug
	}
	base := doc.FilePath
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".md")
	base = strings.TrimSuffix(base, ".markdown")
	return strings.ToLower(strings.TrimSpace(base))
}

func titleFor(doc *interfaces.Document, slug string) string {
	if title := strings.TrimSpace(doc.FrontMatter.Title); title != "" {
		return title
	}
	return fallbackTitle(slug)
}

func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func selectStatus(doc *interfaces.Document, opts interfaces.ImportOptions) domain.Status {
	if opts.Publish {
		return domain.StatusPublished
	}
	if doc.FrontMatter.Draft {
		return domain.StatusDraft
	}
	return domain.NormalizeStatus(doc.FrontMatter.Status)
}

func documentMetadata(doc *interfaces.Document) map[string]any {
	return map[string]any{
		"source":      "markdown",
		"path":        doc.FilePath,
		"part":        doc.Part,
		"frontmatter": util.CloneAnyMap(doc.FrontMatter.Raw),
		"custom":      util.CloneAnyMap(doc.FrontMatter.Custom),
		"timestamp":   doc.LastModified,
	}
}

// uniqueBySlug returns documents ordered by path with duplicate slugs removed.
// Each duplicate is reported through the supplied error sink.
func uniqueBySlug(docs []*interfaces.Document, report func(error)) []*interfaces.Document {
	sorted := make([]*interfaces.Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil {
			sorted = append(sorted, doc)
		}
	}
	slices.SortFunc(sorted, func(a, b *interfaces.Document) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})

	seen := map[string]string{}
	out := make([]*interfaces.Document, 0, len(sorted))
	for _, doc := range sorted {
		slug := slugFor(doc)
		if first, ok := seen[slug]; ok {
			report(fmt.Errorf("%w: %s and %s both map to %q", ErrDuplicateSlug, first, doc.FilePath, slug))
			continue
		}
		seen[slug] = doc.FilePath
		out = append(out, doc)
	}
	return out
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

type importAccumulator struct {
	createdSlugs []string
	updatedSlugs []string
	skippedSlugs []string
	errors       []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdSlugs: []string{},
		updatedSlugs: []string{},
		skippedSlugs: []string{},
		errors:       []error{},
	}
}

func (a *importAccumulator) created(slug string) {
	if slug != "" {
		a.createdSlugs = append(a.createdSlugs, slug)
	}
}

func (a *importAccumulator) updated(slug string) {
	if slug != "" {
		a.updatedSlugs = append(a.updatedSlugs, slug)
	}
}

func (a *importAccumulator) skip(slug string) {
	if slug != "" {
		a.skippedSlugs = append(a.skippedSlugs, slug)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedSlugs: a.createdSlugs,
		UpdatedSlugs: a.updatedSlugs,
		SkippedSlugs: a.skippedSlugs,
		Errors:       a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedSlugs)
	s.updated += len(res.UpdatedSlugs)
	s.skipped += len(res.SkippedSlugs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Deleted: s.deleted,
		Skipped: s.skipped,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
