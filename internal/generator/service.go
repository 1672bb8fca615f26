package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

const (
	defaultChapterTemplate = "chapter"
	defaultIndexTemplate   = "index"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errChaptersRequired = errors.New("generator: chapter service is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	Languages       []string
	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	Workers         int
	ChapterTemplate string
	IndexTemplate   string
	Theming         ThemingConfig
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	Parts  []string
	Slugs  []string
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	Parts         []string
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Chapters chapters.Service
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.StorageProvider
	Assets   AssetResolver
	Routes   *urlkit.RouteManager
	Logger   interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		routes: NewRouteResolver(deps.Routes),
		themes: newThemeSelector(cfg.Theming, nil),
		logger: logger,
		now:    time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	routes RouteResolver
	themes *themeSelector
	logger interfaces.Logger
	now    func() time.Time
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}

	start := time.Now()
	buildCtx, err := s.loadContext(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Parts:       make([]string, 0, len(buildCtx.TOC)),
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(buildCtx.Chapters)+1),
	}
	for _, part := range buildCtx.TOC {
		result.Parts = append(result.Parts, part.Code)
	}

	siteMeta := SiteMetadata{
		Title:     strings.TrimSpace(s.cfg.SiteTitle),
		BaseURL:   strings.TrimRight(s.cfg.BaseURL, "/"),
		Languages: append([]string(nil), s.cfg.Languages...),
		Metadata:  map[string]any{},
	}
	themeCtx := buildThemeContext(buildCtx.Selection, s.cfg.Theming)

	var (
		mu          sync.Mutex
		rendered    = make([]RenderedPage, 0, len(buildCtx.Chapters)+1)
		errorsSlice []error
		baseDir     = strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
		pageKeys    = map[string]struct{}{}
	)

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	var manifest *buildManifest
	if s.cfg.CleanBuild {
		manifest = newBuildManifest()
	} else {
		loaded, manifestErr := s.loadManifest(ctx)
		if manifestErr != nil {
			errorsSlice = append(errorsSlice, manifestErr)
		}
		manifest = loaded
	}
	if manifest == nil {
		manifest = newBuildManifest()
	}

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		pageKeys[manifest.pageKey(outcome.diagnostic.Route)] = struct{}{}
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	grouped := groupChaptersByPart(buildCtx.Chapters)
	workerCount := s.effectiveWorkerCount(len(grouped))
	if workerCount <= 1 || len(buildCtx.Chapters) <= 1 {
		for _, data := range buildCtx.Chapters {
			select {
			case <-ctx.Done():
				collect(renderOutcome{
					diagnostic: RenderDiagnostic{
						ChapterID: data.Chapter.ID,
						Slug:      data.Chapter.Slug,
						Part:      partCode(data.Part),
						Route:     data.Route,
						Err:       ctx.Err(),
					},
					err: ctx.Err(),
				})
				return result, ctx.Err()
			default:
				collect(s.renderChapter(ctx, siteMeta, themeCtx, buildCtx, data, manifest, baseDir))
			}
		}
	} else {
		if err := s.renderConcurrently(ctx, siteMeta, themeCtx, buildCtx, grouped, workerCount, manifest, baseDir, collect); err != nil {
			errorsSlice = append(errorsSlice, err)
			result.Duration = time.Since(start)
			result.Errors = append(result.Errors, errorsSlice...)
			return result, err
		}
	}

	collect(s.renderIndex(ctx, siteMeta, themeCtx, buildCtx, manifest, baseDir))

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		if len(errorsSlice) > 0 {
			result.Errors = append(result.Errors, errorsSlice...)
			return result, errors.Join(errorsSlice...)
		}
		return result, nil
	}

	writer := newArtifactWriter(s.deps.Storage)
	if err := s.persistPages(ctx, writer, rendered); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	if s.cfg.CopyAssets {
		assetSummary, err := s.copyAssets(ctx, writer, buildCtx, manifest, baseDir)
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		} else {
			result.AssetsBuilt += assetSummary.Built
			result.AssetsSkipped += assetSummary.Skipped
		}
	}

	if s.cfg.GenerateSitemap {
		sitemapPages := s.mergeRenderedForSitemap(buildCtx, rendered, manifest)
		if err := s.writeSitemap(ctx, writer, siteMeta, buildCtx, sitemapPages); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, writer, siteMeta); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	if len(errorsSlice) == 0 {
		manifest.GeneratedAt = buildCtx.GeneratedAt
		for _, page := range rendered {
			if strings.TrimSpace(page.Checksum) == "" {
				continue
			}
			manifest.setPage(manifestPage{
				Route:        page.Route,
				Slug:         page.Slug,
				Part:         page.Part,
				Output:       page.Output,
				Template:     page.Template,
				Hash:         page.Metadata.Hash,
				Checksum:     page.Checksum,
				LastModified: page.Metadata.LastModified,
				RenderedAt:   buildCtx.GeneratedAt,
			})
		}
		manifest.prunePages(pageKeys)
		if err := s.persistManifest(ctx, writer, manifest); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)
	s.logger.Info("generator.build",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"assets_built", result.AssetsBuilt,
		"errors", len(errorsSlice),
		"duration", result.Duration.String(),
	)
	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

// Clean removes the configured output directory through the storage provider.
func (s *service) Clean(ctx context.Context) error {
	if s.deps.Storage == nil {
		return nil
	}
	base := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	if base == "" {
		return nil
	}
	if _, err := s.deps.Storage.Exec(ctx, storageOpRemove, base); err != nil {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	return nil
}

func (s *service) renderConcurrently(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	buildCtx *BuildContext,
	grouped map[string][]*ChapterData,
	workers int,
	manifest *buildManifest,
	baseDir string,
	collect func(renderOutcome),
) error {
	if len(grouped) == 0 {
		return nil
	}

	jobs := make(chan []*ChapterData)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				for _, data := range batch {
					select {
					case <-ctx.Done():
						collect(renderOutcome{
							diagnostic: RenderDiagnostic{
								ChapterID: data.Chapter.ID,
								Slug:      data.Chapter.Slug,
								Part:      partCode(data.Part),
								Route:     data.Route,
								Err:       ctx.Err(),
							},
							err: ctx.Err(),
						})
						return
					default:
						collect(s.renderChapter(ctx, siteMeta, themeCtx, buildCtx, data, manifest, baseDir))
					}
				}
			}
		}()
	}

	for _, part := range buildCtx.TOC {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- grouped[part.Code]:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) renderChapter(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	buildCtx *BuildContext,
	data *ChapterData,
	manifest *buildManifest,
	baseDir string,
) renderOutcome {
	code := partCode(data.Part)
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			ChapterID: data.Chapter.ID,
			Slug:      data.Chapter.Slug,
			Part:      code,
			Route:     data.Route,
			Template:  data.Template,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	if s.cfg.Incremental {
		expectedOutput := joinOutputPath(baseDir, buildOutputPath(data.Route))
		if manifest.shouldSkipPage(data.Route, data.Metadata.Hash, expectedOutput) {
			outcome.skipped = true
			outcome.diagnostic.Skipped = true
			return outcome
		}
	}

	templateCtx := TemplateContext{
		Site: siteMeta,
		Chapter: ChapterRenderingContext{
			Chapter:  data.Chapter,
			Part:     data.Part,
			Route:    data.Route,
			Metadata: data.Metadata,
		},
		TOC: buildCtx.TOC,
		Build: BuildMetadata{
			GeneratedAt: buildCtx.GeneratedAt,
			Options:     buildCtx.Options,
		},
		Theme:   themeCtx,
		Helpers: newTemplateHelpers(code, siteMeta.BaseURL),
	}

	start := time.Now()
	html, err := s.deps.Renderer.RenderTemplate(data.Template, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render template %q for chapter %s: %w", data.Template, data.Chapter.Slug, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = RenderedPage{
		ChapterID: data.Chapter.ID,
		Slug:      data.Chapter.Slug,
		Part:      code,
		Route:     data.Route,
		Template:  data.Template,
		HTML:      html,
		Metadata:  data.Metadata,
		Duration:  duration,
	}
	return outcome
}

func (s *service) renderIndex(
	ctx context.Context,
	siteMeta SiteMetadata,
	themeCtx ThemeContext,
	buildCtx *BuildContext,
	manifest *buildManifest,
	baseDir string,
) renderOutcome {
	route := s.routes.IndexRoute()
	template := strings.TrimSpace(s.cfg.IndexTemplate)
	if template == "" {
		template = defaultIndexTemplate
	}
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			Route:    route,
			Template: template,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	metadata := indexMetadata(buildCtx)
	if s.cfg.Incremental {
		expectedOutput := joinOutputPath(baseDir, buildOutputPath(route))
		if manifest.shouldSkipPage(route, metadata.Hash, expectedOutput) {
			outcome.skipped = true
			outcome.diagnostic.Skipped = true
			return outcome
		}
	}

	templateCtx := TemplateContext{
		Site: siteMeta,
		TOC:  buildCtx.TOC,
		Build: BuildMetadata{
			GeneratedAt: buildCtx.GeneratedAt,
			Options:     buildCtx.Options,
		},
		Theme:   themeCtx,
		Helpers: newTemplateHelpers("", siteMeta.BaseURL),
	}

	start := time.Now()
	html, err := s.deps.Renderer.RenderTemplate(template, templateCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render template %q for index: %w", template, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = RenderedPage{
		Route:    route,
		Template: template,
		HTML:     html,
		Metadata: metadata,
		Duration: duration,
	}
	return outcome
}

// indexMetadata derives the change-detection hash for the index page from the
// chapters feeding the table of contents.
func indexMetadata(buildCtx *BuildContext) DependencyMetadata {
	var builder strings.Builder
	metadata := DependencyMetadata{}
	for _, data := range buildCtx.Chapters {
		builder.WriteString(data.Route)
		builder.WriteString("=")
		builder.WriteString(data.Metadata.Hash)
		builder.WriteString("\n")
		if data.Metadata.LastModified.After(metadata.LastModified) {
			metadata.LastModified = data.Metadata.LastModified
		}
	}
	metadata.Hash = computeHashFromString(builder.String())
	return metadata
}

func (s *service) persistPages(
	ctx context.Context,
	writer artifactWriter,
	pages []RenderedPage,
) error {
	if len(pages) == 0 {
		return nil
	}
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		dirCache[baseDir] = struct{}{}
		if err := writer.EnsureDir(ctx, baseDir); err != nil {
			return err
		}
	}
	for i := range pages {
		destRel := buildOutputPath(pages[i].Route)
		fullPath := joinOutputPath(baseDir, destRel)
		if err := ensureDir(ctx, writer, dirCache, path.Dir(fullPath)); err != nil {
			return err
		}
		checksum := computeHashFromString(pages[i].HTML)
		pages[i].Output = fullPath
		pages[i].Checksum = checksum

		category := categoryChapter
		if pages[i].ChapterID == uuid.Nil {
			category = categoryIndex
		}
		metadata := map[string]string{
			"slug":     pages[i].Slug,
			"route":    pages[i].Route,
			"template": pages[i].Template,
		}
		if s.cfg.Incremental {
			metadata["incremental"] = "true"
		}
		req := writeFileRequest{
			Path:        fullPath,
			Content:     strings.NewReader(pages[i].HTML),
			Size:        int64(len(pages[i].HTML)),
			Part:        pages[i].Part,
			Category:    category,
			ContentType: "text/html; charset=utf-8",
			Checksum:    checksum,
			Metadata:    metadata,
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

type assetCopySummary struct {
	Built   int
	Skipped int
}

func (s *service) copyAssets(
	ctx context.Context,
	writer artifactWriter,
	buildCtx *BuildContext,
	manifest *buildManifest,
	baseDir string,
) (assetCopySummary, error) {
	summary := assetCopySummary{}
	if s.deps.Assets == nil || buildCtx.Selection == nil {
		return summary, nil
	}
	themeName := buildCtx.Selection.Theme
	assets := collectThemeAssets(buildCtx.Selection)
	if len(assets) == 0 {
		return summary, nil
	}
	if strings.TrimSpace(baseDir) == "" {
		baseDir = strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	}
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		dirCache[baseDir] = struct{}{}
		if err := writer.EnsureDir(ctx, baseDir); err != nil {
			return summary, err
		}
	}
	for _, asset := range assets {
		reader, err := s.deps.Assets.Open(ctx, asset)
		if err != nil {
			return summary, err
		}
		data, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			return summary, err
		}
		resolved, err := s.deps.Assets.ResolvePath(asset)
		if err != nil {
			return summary, err
		}
		resolved = strings.TrimLeft(strings.TrimSpace(resolved), "/")
		if resolved == "" {
			resolved = strings.TrimLeft(strings.TrimSpace(asset), "/")
		}
		destRel := path.Join("assets", resolved)
		fullPath := joinOutputPath(baseDir, destRel)
		checksum := computeHash(data)
		if s.cfg.Incremental && manifest.shouldSkipAsset(themeName, asset, checksum, fullPath) {
			summary.Skipped++
			continue
		}
		if err := ensureDir(ctx, writer, dirCache, path.Dir(fullPath)); err != nil {
			return summary, err
		}
		req := writeFileRequest{
			Path:        fullPath,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    categoryAsset,
			ContentType: detectAssetContentType(destRel),
			Checksum:    checksum,
			Metadata: map[string]string{
				"theme": themeName,
				"asset": asset,
			},
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return summary, err
		}
		summary.Built++
		manifest.setAsset(manifestAsset{
			Key:      manifest.assetKey(themeName, asset),
			Theme:    themeName,
			Source:   asset,
			Output:   fullPath,
			Checksum: checksum,
			Size:     int64(len(data)),
			CopiedAt: s.now(),
		})
	}
	return summary, nil
}

func (s *service) mergeRenderedForSitemap(
	buildCtx *BuildContext,
	rendered []RenderedPage,
	manifest *buildManifest,
) []RenderedPage {
	renderedByKey := make(map[string]RenderedPage, len(rendered))
	for _, page := range rendered {
		renderedByKey[manifest.pageKey(page.Route)] = page
	}

	routes := make([]string, 0, len(buildCtx.Chapters)+1)
	for _, data := range buildCtx.Chapters {
		routes = append(routes, data.Route)
	}
	routes = append(routes, s.routes.IndexRoute())

	sitemap := make([]RenderedPage, 0, len(routes))
	for _, route := range routes {
		key := manifest.pageKey(route)
		if page, ok := renderedByKey[key]; ok {
			sitemap = append(sitemap, page)
			continue
		}
		if entry, ok := manifest.lookupPage(route); ok {
			sitemap = append(sitemap, RenderedPage{
				Slug:     entry.Slug,
				Part:     entry.Part,
				Route:    entry.Route,
				Output:   entry.Output,
				Template: entry.Template,
				Metadata: DependencyMetadata{
					Hash:         entry.Hash,
					LastModified: entry.LastModified,
				},
				Checksum: entry.Checksum,
			})
			continue
		}
		sitemap = append(sitemap, RenderedPage{Route: route})
	}
	return sitemap
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	if s.deps.Storage == nil {
		return newBuildManifest(), nil
	}
	target := s.manifestTargetPath()
	if strings.TrimSpace(target) == "" {
		return newBuildManifest(), nil
	}
	rows, err := s.deps.Storage.Query(ctx, storageOpRead, target)
	if err != nil {
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	if rows == nil {
		return newBuildManifest(), nil
	}
	defer rows.Close()
	if !rows.Next() {
		return newBuildManifest(), nil
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("generator: scan manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) manifestTargetPath() string {
	base := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	return joinOutputPath(base, manifestFileName)
}

func (s *service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest) error {
	if manifest == nil {
		return nil
	}
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	target := s.manifestTargetPath()
	if strings.TrimSpace(target) == "" {
		return nil
	}
	dirCache := map[string]struct{}{}
	if err := ensureDir(ctx, writer, dirCache, path.Dir(target)); err != nil {
		return err
	}
	metadata := map[string]string{
		"version": strconv.Itoa(manifest.Version),
	}
	if !manifest.GeneratedAt.IsZero() {
		metadata["generated_at"] = manifest.GeneratedAt.UTC().Format(time.RFC3339)
	}
	req := writeFileRequest{
		Path:        target,
		Content:     bytes.NewReader(data),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
		Metadata:    metadata,
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) writeSitemap(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	buildCtx *BuildContext,
	pages []RenderedPage,
) error {
	content := buildSitemap(siteMeta.BaseURL, pages, buildCtx.GeneratedAt)
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	fullPath := joinOutputPath(baseDir, "sitemap.xml")
	if err := ensureDir(ctx, writer, map[string]struct{}{}, path.Dir(fullPath)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        fullPath,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": buildCtx.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) writeRobots(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
) error {
	content := buildRobots(siteMeta.BaseURL, s.cfg.GenerateSitemap)
	baseDir := strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
	fullPath := joinOutputPath(baseDir, "robots.txt")
	if err := ensureDir(ctx, writer, map[string]struct{}{}, path.Dir(fullPath)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        fullPath,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": s.now().UTC().Format(time.RFC3339),
		},
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) effectiveWorkerCount(groupCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if groupCount > 0 && workers > groupCount {
		return groupCount
	}
	return workers
}

func groupChaptersByPart(data []*ChapterData) map[string][]*ChapterData {
	grouped := make(map[string][]*ChapterData, len(data))
	for _, item := range data {
		if item == nil {
			continue
		}
		code := partCode(item.Part)
		grouped[code] = append(grouped[code], item)
	}
	return grouped
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(dir, " ")
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
