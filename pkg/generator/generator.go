// Package generator exposes the static site generation API for go-book hosts.
// Use NewService with Config and Dependencies to prerender chapter pages,
// copy theme assets, and emit sitemaps for the book catalog.
package generator

import (
	internal "github.com/goliatone/go-book/internal/generator"
	urlkit "github.com/goliatone/go-urlkit"
)

type (
	Service           = internal.Service
	Config            = internal.Config
	ThemingConfig     = internal.ThemingConfig
	BuildOptions      = internal.BuildOptions
	BuildResult       = internal.BuildResult
	RenderedPage      = internal.RenderedPage
	RenderDiagnostic  = internal.RenderDiagnostic
	Dependencies      = internal.Dependencies
	AssetResolver     = internal.AssetResolver
	NoOpAssetResolver = internal.NoOpAssetResolver
	RouteResolver     = internal.RouteResolver
	TemplateContext   = internal.TemplateContext
	SiteMetadata      = internal.SiteMetadata
	TOCPart           = internal.TOCPart
	TOCEntry          = internal.TOCEntry
)

var ErrServiceDisabled = internal.ErrServiceDisabled

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a generator that fails fast with ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}

// NewRouteManager returns a urlkit route manager preloaded with the book route groups.
func NewRouteManager() *urlkit.RouteManager {
	return internal.NewRouteManager()
}

// NewRouteResolver adapts a urlkit route manager into the resolver used during builds.
func NewRouteResolver(manager *urlkit.RouteManager) RouteResolver {
	return internal.NewRouteResolver(manager)
}

// NewDirAssetResolver resolves theme assets from a directory on disk.
func NewDirAssetResolver(dir string) AssetResolver {
	return internal.NewDirAssetResolver(dir)
}
