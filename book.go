package book

import (
	"github.com/goliatone/go-book/chapters"
	"github.com/goliatone/go-book/internal/di"
	"github.com/goliatone/go-book/pkg/generator"
	"github.com/goliatone/go-book/pkg/interfaces"
)

// ChapterService exports the chapter catalog contract for consumers of the book package.
type ChapterService = chapters.Service

// MarkdownService exports the chapter ingestion contract.
type MarkdownService = interfaces.MarkdownService

// LintService exports the structural lint contract.
type LintService = interfaces.LintService

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// LintReport exports the lint report DTO.
type LintReport = interfaces.LintReport

// Diagnostic exports the lint diagnostic DTO.
type Diagnostic = interfaces.Diagnostic

// BuildOptions exports the generator build filters.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build summary.
type BuildResult = generator.BuildResult

// Module represents the top level book engine runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a book module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Chapters returns the configured chapter catalog service.
func (m *Module) Chapters() ChapterService {
	return m.container.ChapterService()
}

// Markdown returns the markdown service when configured.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Lint returns the lint service when configured.
func (m *Module) Lint() LintService {
	return m.container.LintService()
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}
