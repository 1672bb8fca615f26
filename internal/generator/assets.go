package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// AssetResolver resolves theme assets for copying into static outputs.
type AssetResolver interface {
	Open(ctx context.Context, asset string) (io.ReadCloser, error)
	ResolvePath(asset string) (string, error)
}

// NoOpAssetResolver skips asset resolution.
type NoOpAssetResolver struct{}

func (NoOpAssetResolver) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("generator: asset resolver not configured")
}

func (NoOpAssetResolver) ResolvePath(string) (string, error) {
	return "", fmt.Errorf("generator: asset resolver not configured")
}

// NewDirAssetResolver resolves assets relative to a theme directory on disk.
func NewDirAssetResolver(dir string) AssetResolver {
	return &dirAssetResolver{fsys: os.DirFS(filepath.Clean(dir))}
}

// NewFSAssetResolver resolves assets from the provided filesystem, typically
// an embedded or test filesystem.
func NewFSAssetResolver(fsys fs.FS) AssetResolver {
	return &dirAssetResolver{fsys: fsys}
}

type dirAssetResolver struct {
	fsys fs.FS
}

func (r *dirAssetResolver) Open(_ context.Context, asset string) (io.ReadCloser, error) {
	name, err := r.ResolvePath(asset)
	if err != nil {
		return nil, err
	}
	file, err := r.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("generator: open asset %s: %w", asset, err)
	}
	return file, nil
}

func (r *dirAssetResolver) ResolvePath(asset string) (string, error) {
	cleaned := strings.TrimPrefix(strings.TrimSpace(asset), "/")
	if cleaned == "" {
		return "", fmt.Errorf("generator: asset path required")
	}
	if !fs.ValidPath(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("generator: asset path %q escapes theme directory", asset)
	}
	return cleaned, nil
}

func collectThemeAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, path := range selection.Manifest.Assets.Files {
				merged[key] = path
			}
			for key, path := range v.Assets.Files {
				merged[key] = path
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
