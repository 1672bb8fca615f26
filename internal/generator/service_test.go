package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/pkg/interfaces"
	gotheme "github.com/goliatone/go-theme"
)

func TestBuildRendersPublishableChapters(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	renderer := &recordingRenderer{}
	storage := &recordingStorage{}
	svc := NewService(testConfig(), Dependencies{
		Chapters: catalog,
		Renderer: renderer,
		Storage:  storage,
	}).(*service)

	result, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if result.PagesBuilt != 4 {
		t.Fatalf("expected 4 pages built (3 chapters + index), got %d", result.PagesBuilt)
	}
	if len(result.Diagnostics) != 4 {
		t.Fatalf("expected 4 diagnostics, got %d", len(result.Diagnostics))
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if len(result.Parts) != 2 || result.Parts[0] != "basics" || result.Parts[1] != "advanced" {
		t.Fatalf("expected parts [basics advanced], got %v", result.Parts)
	}

	expectFiles := []string{
		"dist/basics/getting-started/index.html",
		"dist/basics/variables/index.html",
		"dist/advanced/metaprogramming/index.html",
		"dist/index.html",
		"dist/sitemap.xml",
		"dist/robots.txt",
		"dist/.book-manifest.json",
	}
	for _, name := range expectFiles {
		if _, ok := storage.File(name); !ok {
			t.Fatalf("expected %s to be written, have %v", name, storage.FileNames())
		}
	}

	for _, page := range result.Rendered {
		if page.Output == "" {
			t.Fatalf("expected output path for page %s", page.Route)
		}
		if page.Checksum == "" {
			t.Fatalf("expected checksum for page %s", page.Route)
		}
	}

	sitemap, _ := storage.File("dist/sitemap.xml")
	if !strings.Contains(string(sitemap), "https://book.example.com/basics/variables") {
		t.Fatalf("expected sitemap entry for variables chapter, got:\n%s", sitemap)
	}
	robots, _ := storage.File("dist/robots.txt")
	if !strings.Contains(string(robots), "Sitemap: https://book.example.com/sitemap.xml") {
		t.Fatalf("expected robots sitemap link, got:\n%s", robots)
	}
}

func TestBuildPassesTableOfContentsToTemplates(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)

	renderer := &recordingRenderer{}
	svc := NewService(testConfig(), Dependencies{
		Chapters: catalog,
		Renderer: renderer,
		Storage:  &recordingStorage{},
	}).(*service)

	if _, err := svc.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}

	calls := renderer.Calls()
	if len(calls) != 4 {
		t.Fatalf("expected 4 render calls, got %d", len(calls))
	}
	var indexCtx *TemplateContext
	for i := range calls {
		tc, ok := calls[i].Data.(TemplateContext)
		if !ok {
			t.Fatalf("expected TemplateContext, got %T", calls[i].Data)
		}
		if calls[i].Name == "index" {
			indexCtx = &tc
			continue
		}
		if calls[i].Name != "chapter" {
			t.Fatalf("unexpected template %q", calls[i].Name)
		}
		if tc.Chapter.Chapter == nil {
			t.Fatal("expected chapter context on chapter template")
		}
	}
	if indexCtx == nil {
		t.Fatal("expected index template render")
	}
	if len(indexCtx.TOC) != 2 {
		t.Fatalf("expected 2 TOC parts, got %d", len(indexCtx.TOC))
	}
	basics := indexCtx.TOC[0]
	if basics.Code != "basics" || len(basics.Entries) != 2 {
		t.Fatalf("expected basics part with 2 entries, got %+v", basics)
	}
	if basics.Entries[0].Slug != "getting-started" || basics.Entries[0].Route != "/basics/getting-started" {
		t.Fatalf("unexpected first TOC entry: %+v", basics.Entries[0])
	}
	if indexCtx.Site.Title != "Ruby and Python, Side by Side" {
		t.Fatalf("unexpected site title %q", indexCtx.Site.Title)
	}
}

func TestBuildIncrementalSkipsUnchangedChapters(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t)
	storage := &recordingStorage{}

	cfg := testConfig()
	cfg.Incremental = true

	first := NewService(cfg, Dependencies{
		Chapters: catalog,
		Renderer: &recordingRenderer{},
		Storage:  storage,
	})
	if _, err := first.Build(ctx, BuildOptions{}); err != nil {
		t.Fatalf("first build: %v", err)
	}

	second := NewService(cfg, Dependencies{
		Chapters: catalog,
		Renderer: &recordingRenderer{},
		Storage:  storage,
	})
	result, err := second.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if result.PagesBuilt != 0 {
		t.Fatalf("expected no pages rebuilt, got %d", result.PagesBuilt)
	}
	if result.PagesSkipped != 4 {
		t.Fatalf("expected 4 pages skipped, got %d", result.PagesSkipped)
	}

	sitemap, ok := storage.File("dist/sitemap.xml")
	if !ok || !strings.Contains(string(sitemap), "/basics/getting-started") {
		t.Fatalf("expected sitemap rebuilt from manifest entries, got:\n%s", sitemap)
	}
}

func TestBuildDryRunPerformsNoWrites(t *testing.T) {
	ctx := context.Background()
	storage := &recordingStorage{}

	svc := NewService(testConfig(), Dependencies{
		Chapters: newTestCatalog(t),
		Renderer: &recordingRenderer{},
		Storage:  storage,
	})

	result, err := svc.Build(ctx, BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 4 {
		t.Fatalf("expected 4 pages rendered, got %d", result.PagesBuilt)
	}
	if calls := storage.ExecCalls(); len(calls) != 0 {
		t.Fatalf("expected no storage writes during dry run, got %d", len(calls))
	}
}

func TestBuildFiltersByPart(t *testing.T) {
	ctx := context.Background()

	svc := NewService(testConfig(), Dependencies{
		Chapters: newTestCatalog(t),
		Renderer: &recordingRenderer{},
		Storage:  &recordingStorage{},
	})

	result, err := svc.Build(ctx, BuildOptions{Parts: []string{"advanced"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected advanced chapter + index, got %d pages", result.PagesBuilt)
	}
	for _, page := range result.Rendered {
		if page.Slug != "" && page.Part != "advanced" {
			t.Fatalf("unexpected part %q in filtered build", page.Part)
		}
	}
}

func TestBuildWithoutPublishableChaptersSucceeds(t *testing.T) {
	ctx := context.Background()
	catalog := newEmptyCatalog()
	if _, err := catalog.Create(ctx, chapters.CreateChapterRequest{
		Slug:   "work-in-progress",
		Title:  "Work In Progress",
		Status: "draft",
		Body:   "# Chapter 1: Work In Progress",
	}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	storage := &recordingStorage{}
	result, err := NewService(testConfig(), Dependencies{
		Chapters: catalog,
		Renderer: &recordingRenderer{},
		Storage:  storage,
	}).Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected only the index page, got %d", result.PagesBuilt)
	}
	if len(result.Parts) != 0 {
		t.Fatalf("expected no parts, got %v", result.Parts)
	}
	if _, ok := storage.File("dist/index.html"); !ok {
		t.Fatal("expected index page to be written")
	}
}

func TestBuildReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := testConfig()
	cfg.Workers = 1

	renderer := &cancellingRenderer{cancel: cancel}
	result, err := NewService(cfg, Dependencies{
		Chapters: newTestCatalog(t),
		Renderer: renderer,
		Storage:  &recordingStorage{},
	}).Build(ctx, BuildOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("expected partial result on cancellation")
	}
}

func TestBuildCopiesThemeAssets(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.CopyAssets = true
	cfg.Theming = ThemingConfig{Name: "aurora", Path: "testdata/theme"}

	assetFS := fstest.MapFS{
		"css/site.css": &fstest.MapFile{Data: []byte("body { margin: 0 }")},
		"js/book.js":   &fstest.MapFile{Data: []byte("console.log('book')")},
	}

	storage := &recordingStorage{}
	renderer := &recordingRenderer{}
	svc := NewService(cfg, Dependencies{
		Chapters: newTestCatalog(t),
		Renderer: renderer,
		Storage:  storage,
		Assets:   NewFSAssetResolver(assetFS),
	}).(*service)
	svc.themes = newThemeSelector(cfg.Theming, stubManifestLoader{manifest: testThemeManifest()})

	result, err := svc.Build(ctx, BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.AssetsBuilt != 2 {
		t.Fatalf("expected 2 assets copied, got %d", result.AssetsBuilt)
	}
	if _, ok := storage.File("dist/assets/css/site.css"); !ok {
		t.Fatalf("expected stylesheet copy, have %v", storage.FileNames())
	}

	calls := renderer.Calls()
	tc, ok := calls[0].Data.(TemplateContext)
	if !ok {
		t.Fatalf("expected TemplateContext, got %T", calls[0].Data)
	}
	if tc.Theme.Name != "aurora" {
		t.Fatalf("expected theme context aurora, got %q", tc.Theme.Name)
	}
}

func TestCleanRemovesOutputDirectory(t *testing.T) {
	storage := &recordingStorage{}
	svc := NewService(testConfig(), Dependencies{
		Chapters: newEmptyCatalog(),
		Renderer: &recordingRenderer{},
		Storage:  storage,
	})

	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	calls := storage.ExecCalls()
	if len(calls) != 1 || calls[0].Query != storageOpRemove {
		t.Fatalf("expected one remove call, got %+v", calls)
	}
	if calls[0].Args[0] != "dist" {
		t.Fatalf("expected removal of dist, got %v", calls[0].Args[0])
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()
	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if err := svc.Clean(context.Background()); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func testConfig() Config {
	return Config{
		OutputDir:       "dist",
		BaseURL:         "https://book.example.com",
		SiteTitle:       "Ruby and Python, Side by Side",
		Languages:       []string{"ruby", "python"},
		GenerateSitemap: true,
		GenerateRobots:  true,
	}
}

func newEmptyCatalog() chapters.Service {
	return chapters.NewService(
		chapters.NewMemoryChapterRepository(),
		chapters.NewMemoryPartRepository(),
	)
}

func newTestCatalog(t *testing.T) chapters.Service {
	t.Helper()
	ctx := context.Background()
	svc := newEmptyCatalog()

	if _, err := svc.EnsurePart(ctx, "basics", "Basics", 1); err != nil {
		t.Fatalf("ensure part: %v", err)
	}
	if _, err := svc.EnsurePart(ctx, "advanced", "Advanced", 2); err != nil {
		t.Fatalf("ensure part: %v", err)
	}

	seed := []chapters.CreateChapterRequest{
		{
			Slug:     "getting-started",
			Title:    "Getting Started",
			Number:   1,
			Part:     "basics",
			Status:   "published",
			Body:     "# Chapter 1: Getting Started",
			BodyHTML: "<h1>Getting Started</h1>",
			Checksum: "hash-getting-started",
		},
		{
			Slug:     "variables",
			Title:    "Variables",
			Number:   2,
			Part:     "basics",
			Status:   "published",
			Body:     "# Chapter 2: Variables",
			BodyHTML: "<h1>Variables</h1>",
			Checksum: "hash-variables",
		},
		{
			Slug:     "metaprogramming",
			Title:    "Metaprogramming",
			Number:   9,
			Part:     "advanced",
			Status:   "published",
			Body:     "# Chapter 9: Metaprogramming",
			BodyHTML: "<h1>Metaprogramming</h1>",
			Checksum: "hash-metaprogramming",
		},
		{
			Slug:   "appendix-notes",
			Title:  "Appendix Notes",
			Number: 10,
			Part:   "advanced",
			Status: "draft",
			Body:   "# Chapter 10: Appendix Notes",
		},
	}
	for _, req := range seed {
		if _, err := svc.Create(ctx, req); err != nil {
			t.Fatalf("create %s: %v", req.Slug, err)
		}
	}
	return svc
}

func testThemeManifest() *gotheme.Manifest {
	manifest := &gotheme.Manifest{Name: "aurora", Version: "1.0.0"}
	manifest.Assets.Files = map[string]string{
		"styles":  "css/site.css",
		"scripts": "js/book.js",
	}
	return manifest
}

type stubManifestLoader struct {
	manifest *gotheme.Manifest
}

func (l stubManifestLoader) Load(string) (*gotheme.Manifest, error) {
	if l.manifest == nil {
		return nil, fmt.Errorf("no manifest configured")
	}
	return l.manifest, nil
}

type renderCall struct {
	Name string
	Data any
}

type recordingRenderer struct {
	mu    sync.Mutex
	calls []renderCall
}

func (r *recordingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, renderCall{Name: name, Data: data})
	r.mu.Unlock()
	return "<html>" + name + "</html>", nil
}

func (r *recordingRenderer) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return content, nil
}

func (r *recordingRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingRenderer) GlobalContext(any) error { return nil }

func (r *recordingRenderer) Calls() []renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]renderCall, len(r.calls))
	copy(calls, r.calls)
	return calls
}

type cancellingRenderer struct {
	once   sync.Once
	cancel context.CancelFunc
}

func (r *cancellingRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *cancellingRenderer) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.once.Do(r.cancel)
	return "<html>" + name + "</html>", nil
}

func (r *cancellingRenderer) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return content, nil
}

func (r *cancellingRenderer) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *cancellingRenderer) GlobalContext(any) error { return nil }

type storageCall struct {
	Query string
	Args  []any
}

type recordingStorage struct {
	mu      sync.Mutex
	execs   []storageCall
	queries []storageCall
	files   map[string][]byte
}

func (s *recordingStorage) Exec(_ context.Context, query string, args ...any) (interfaces.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == storageOpWrite && len(args) >= 2 {
		if target, ok := args[0].(string); ok {
			if reader, ok := args[1].(io.Reader); ok && reader != nil {
				data, err := io.ReadAll(reader)
				if err == nil {
					if s.files == nil {
						s.files = map[string][]byte{}
					}
					s.files[target] = append([]byte(nil), data...)
				}
			}
		}
	}
	if query == storageOpRemove && len(args) >= 1 {
		if target, ok := args[0].(string); ok && s.files != nil {
			prefix := strings.TrimRight(target, "/") + "/"
			for name := range s.files {
				if name == target || strings.HasPrefix(name, prefix) {
					delete(s.files, name)
				}
			}
		}
	}
	s.execs = append(s.execs, storageCall{Query: query, Args: append([]any(nil), args...)})
	return noopResult{}, nil
}

func (s *recordingStorage) Query(_ context.Context, query string, args ...any) (interfaces.Rows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, storageCall{Query: query, Args: append([]any(nil), args...)})
	if query == storageOpRead && len(args) > 0 {
		if target, ok := args[0].(string); ok {
			if data, ok := s.files[target]; ok {
				return &bufferedRows{data: [][]byte{append([]byte(nil), data...)}}, nil
			}
		}
	}
	return &bufferedRows{}, nil
}

func (s *recordingStorage) Transaction(_ context.Context, fn func(tx interfaces.Transaction) error) error {
	if fn == nil {
		return nil
	}
	return fn(&recordingTx{storage: s})
}

func (s *recordingStorage) ExecCalls() []storageCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]storageCall, len(s.execs))
	copy(calls, s.execs)
	return calls
}

func (s *recordingStorage) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

func (s *recordingStorage) FileNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}

type recordingTx struct {
	storage *recordingStorage
}

func (tx *recordingTx) Exec(ctx context.Context, query string, args ...any) (interfaces.Result, error) {
	return tx.storage.Exec(ctx, query, args...)
}

func (tx *recordingTx) Query(ctx context.Context, query string, args ...any) (interfaces.Rows, error) {
	return tx.storage.Query(ctx, query, args...)
}

func (recordingTx) Transaction(context.Context, func(interfaces.Transaction) error) error {
	return fmt.Errorf("nested transactions not supported")
}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type noopResult struct{}

func (noopResult) RowsAffected() (int64, error) { return 0, nil }
func (noopResult) LastInsertId() (int64, error) { return 0, nil }

type bufferedRows struct {
	data  [][]byte
	index int
}

func (r *bufferedRows) Next() bool {
	if r.index >= len(r.data) {
		return false
	}
	r.index++
	return true
}

func (r *bufferedRows) Scan(dest ...any) error {
	if r.index == 0 || r.index > len(r.data) {
		return fmt.Errorf("buffered rows: scan without next")
	}
	if len(dest) == 0 {
		return fmt.Errorf("buffered rows: missing destination")
	}
	value := r.data[r.index-1]
	switch target := dest[0].(type) {
	case *[]byte:
		*target = append((*target)[:0], value...)
		return nil
	case *string:
		*target = string(value)
		return nil
	default:
		return fmt.Errorf("buffered rows: unsupported scan type %T", dest[0])
	}
}

func (r *bufferedRows) Close() error { return nil }
