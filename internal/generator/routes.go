package generator

import (
	"fmt"
	"path"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	routeGroupName   = "book"
	routeChapter     = "chapter"
	routeStandalone  = "standalone"
	routeIndex       = "index"
	routeParamPart   = "part"
	routeParamSlug   = "slug"
	defaultRouteSpec = "/:part/:slug"
)

// RouteResolver produces site-relative routes for generated pages.
type RouteResolver interface {
	ChapterRoute(part, slug string) (string, error)
	IndexRoute() string
}

// NewRouteManager returns the route configuration used when the host does not
// supply its own go-urlkit manager. Chapter pages live under their part code;
// chapters without a part sit at the site root.
func NewRouteManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name: routeGroupName,
				Paths: map[string]string{
					routeChapter:    defaultRouteSpec,
					routeStandalone: "/:slug",
					routeIndex:      "/",
				},
			},
		},
	})
}

// NewRouteResolver wraps a go-urlkit route manager. A nil manager falls back
// to the default route layout.
func NewRouteResolver(manager *urlkit.RouteManager) RouteResolver {
	if manager == nil {
		manager = NewRouteManager()
	}
	return &urlkitRoutes{
		manager:    manager,
		groupCache: map[string]*urlkit.Group{},
	}
}

type urlkitRoutes struct {
	manager *urlkit.RouteManager

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

func (r *urlkitRoutes) ChapterRoute(part, slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("generator: chapter route requires slug")
	}
	group, err := r.group(routeGroupName)
	if err != nil {
		return "", err
	}

	part = strings.TrimSpace(part)
	routeName := routeChapter
	if part == "" {
		routeName = routeStandalone
	}
	builder, err := safeBuilder(group, routeName)
	if err != nil {
		return "", err
	}
	if part != "" {
		builder.WithParam(routeParamPart, part)
	}
	builder.WithParam(routeParamSlug, slug)

	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("generator: build route for %s: %w", slug, err)
	}
	return normalizeRoute(url), nil
}

func (r *urlkitRoutes) IndexRoute() string {
	return "/"
}

func (r *urlkitRoutes) group(name string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[name]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := lookupGroup(r.manager, name)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.groupCache[name] = group
	r.mu.Unlock()
	return group, nil
}

func normalizeRoute(url string) string {
	url = strings.TrimSpace(url)
	if idx := strings.Index(url, "://"); idx >= 0 {
		rest := url[idx+3:]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			url = rest[slash:]
		} else {
			url = "/"
		}
	}
	if url == "" {
		return "/"
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return path.Clean(url)
}

func lookupGroup(manager *urlkit.RouteManager, name string) (*urlkit.Group, error) {
	if manager == nil {
		return nil, fmt.Errorf("generator: route manager not configured")
	}
	var (
		group *urlkit.Group
		err   error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (*urlkit.Builder, error) {
	if group == nil {
		return nil, fmt.Errorf("generator: route group is nil")
	}
	var (
		builder *urlkit.Builder
		err     error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
