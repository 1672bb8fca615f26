package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".book-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build to support incremental runs.
type buildManifest struct {
	Version     int                        `json:"version"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Pages       map[string]manifestPage    `json:"pages"`
	Assets      map[string]manifestAsset   `json:"assets"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
}

type manifestPage struct {
	Route        string    `json:"route"`
	Slug         string    `json:"slug,omitempty"`
	Part         string    `json:"part,omitempty"`
	Output       string    `json:"output"`
	Template     string    `json:"template"`
	Hash         string    `json:"hash"`
	Checksum     string    `json:"checksum"`
	LastModified time.Time `json:"last_modified"`
	RenderedAt   time.Time `json:"rendered_at"`
}

type manifestAsset struct {
	Key      string    `json:"key"`
	Theme    string    `json:"theme"`
	Source   string    `json:"source"`
	Output   string    `json:"output"`
	Checksum string    `json:"checksum"`
	Size     int64     `json:"size"`
	CopiedAt time.Time `json:"copied_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version:     manifestFileVersion,
		Pages:       map[string]manifestPage{},
		Assets:      map[string]manifestAsset{},
		Metadata:    map[string]json.RawMessage{},
		GeneratedAt: time.Time{},
	}
}

// manifestDocument is the serialized shape: pages and assets flatten to
// sorted lists so manifest diffs stay stable between builds.
type manifestDocument struct {
	Version     int                        `json:"version"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Pages       []manifestPage             `json:"pages,omitempty"`
	Assets      []manifestAsset            `json:"assets,omitempty"`
	Metadata    map[string]json.RawMessage `json:"metadata,omitempty"`
}

func parseManifest(data []byte) (*buildManifest, error) {
	manifest := newBuildManifest()
	if len(data) == 0 {
		return manifest, nil
	}
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if doc.Version != 0 {
		manifest.Version = doc.Version
	}
	manifest.GeneratedAt = doc.GeneratedAt
	for _, page := range doc.Pages {
		manifest.setPage(page)
	}
	for _, asset := range doc.Assets {
		manifest.setAsset(asset)
	}
	if doc.Metadata != nil {
		manifest.Metadata = doc.Metadata
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	cloned := *m
	if cloned.Version == 0 {
		cloned.Version = manifestFileVersion
	}
	if cloned.Pages == nil {
		cloned.Pages = map[string]manifestPage{}
	}
	if cloned.Assets == nil {
		cloned.Assets = map[string]manifestAsset{}
	}
	if cloned.Metadata == nil {
		cloned.Metadata = map[string]json.RawMessage{}
	}
	ordered := manifestDocument{
		Version:     cloned.Version,
		GeneratedAt: cloned.GeneratedAt,
		Metadata:    cloned.Metadata,
	}
	if len(cloned.Pages) > 0 {
		ordered.Pages = make([]manifestPage, 0, len(cloned.Pages))
		for _, entry := range cloned.Pages {
			ordered.Pages = append(ordered.Pages, entry)
		}
		sort.Slice(ordered.Pages, func(i, j int) bool {
			return ordered.Pages[i].Route < ordered.Pages[j].Route
		})
	}
	if len(cloned.Assets) > 0 {
		ordered.Assets = make([]manifestAsset, 0, len(cloned.Assets))
		for _, entry := range cloned.Assets {
			ordered.Assets = append(ordered.Assets, entry)
		}
		sort.Slice(ordered.Assets, func(i, j int) bool {
			return ordered.Assets[i].Key < ordered.Assets[j].Key
		})
	}
	return json.MarshalIndent(ordered, "", "  ")
}

func (m *buildManifest) pageKey(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return strings.ToLower(route)
}

func (m *buildManifest) assetKey(theme string, source string) string {
	return strings.ToLower(strings.TrimSpace(theme)) + "::" + strings.TrimSpace(source)
}

func (m *buildManifest) lookupPage(route string) (manifestPage, bool) {
	if m == nil || len(m.Pages) == 0 {
		return manifestPage{}, false
	}
	entry, ok := m.Pages[m.pageKey(route)]
	return entry, ok
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil {
		return
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[m.pageKey(entry.Route)] = entry
}

func (m *buildManifest) shouldSkipPage(route, hash, output string) bool {
	entry, ok := m.lookupPage(route)
	if !ok {
		return false
	}
	if entry.Hash != hash {
		return false
	}
	if strings.TrimSpace(entry.Output) != strings.TrimSpace(output) {
		return false
	}
	return true
}

func (m *buildManifest) lookupAsset(theme string, source string) (manifestAsset, bool) {
	if m == nil || len(m.Assets) == 0 {
		return manifestAsset{}, false
	}
	entry, ok := m.Assets[m.assetKey(theme, source)]
	return entry, ok
}

func (m *buildManifest) setAsset(entry manifestAsset) {
	if m == nil {
		return
	}
	if m.Assets == nil {
		m.Assets = map[string]manifestAsset{}
	}
	key := strings.ToLower(entry.Key)
	if key == "" {
		key = m.assetKey(entry.Theme, entry.Source)
		entry.Key = key
	}
	m.Assets[key] = entry
}

func (m *buildManifest) shouldSkipAsset(theme, source, checksum, output string) bool {
	entry, ok := m.lookupAsset(theme, source)
	if !ok {
		return false
	}
	if entry.Checksum != checksum {
		return false
	}
	if strings.TrimSpace(entry.Output) != strings.TrimSpace(output) {
		return false
	}
	return true
}

func (m *buildManifest) prunePages(keys map[string]struct{}) {
	if len(keys) == 0 || len(m.Pages) == 0 {
		return
	}
	for key := range m.Pages {
		if _, ok := keys[key]; !ok {
			delete(m.Pages, key)
		}
	}
}
