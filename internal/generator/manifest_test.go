package generator

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-book/pkg/testsupport"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.GeneratedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	manifest.setPage(manifestPage{
		Route:    "/basics/variables",
		Slug:     "variables",
		Part:     "basics",
		Output:   "dist/basics/variables/index.html",
		Template: "chapter",
		Hash:     "hash-1",
		Checksum: "check-1",
	})
	manifest.setPage(manifestPage{
		Route:    "/",
		Output:   "dist/index.html",
		Template: "index",
		Hash:     "hash-index",
		Checksum: "check-index",
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// Routes serialize in lexical order for stable diffs.
	if strings.Index(string(data), `"route": "/"`) > strings.Index(string(data), `"route": "/basics/variables"`) {
		t.Fatalf("expected routes sorted, got:\n%s", data)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	entry, ok := parsed.lookupPage("/basics/variables")
	if !ok {
		t.Fatal("expected page entry after round trip")
	}
	if entry.Hash != "hash-1" || entry.Output != "dist/basics/variables/index.html" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if parsed.Version != manifestFileVersion {
		t.Fatalf("expected version %d, got %d", manifestFileVersion, parsed.Version)
	}
}

func TestManifestMatchesGolden(t *testing.T) {
	modified := time.Date(2026, 2, 27, 8, 30, 0, 0, time.UTC)
	rendered := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	manifest := newBuildManifest()
	manifest.GeneratedAt = rendered
	manifest.setPage(manifestPage{
		Route:        "/",
		Output:       "dist/index.html",
		Template:     "index",
		Hash:         "hash-index",
		Checksum:     "check-index",
		LastModified: modified,
		RenderedAt:   rendered,
	})
	manifest.setPage(manifestPage{
		Route:        "/basics/variables",
		Slug:         "variables",
		Part:         "basics",
		Output:       "dist/basics/variables/index.html",
		Template:     "chapter",
		Hash:         "hash-1",
		Checksum:     "check-1",
		LastModified: modified,
		RenderedAt:   rendered,
	})
	manifest.setAsset(manifestAsset{
		Theme:    "aurora",
		Source:   "css/site.css",
		Output:   "dist/assets/css/site.css",
		Checksum: "check-css",
		Size:     512,
		CopiedAt: rendered,
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var produced map[string]any
	if err := json.Unmarshal(data, &produced); err != nil {
		t.Fatalf("decode marshalled manifest: %v", err)
	}

	var golden map[string]any
	if err := testsupport.LoadGolden(filepath.Join("testdata", "manifest.golden.json"), &golden); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if !reflect.DeepEqual(produced, golden) {
		t.Fatalf("manifest drifted from golden file:\n%s", data)
	}
}

func TestParseManifestGoldenFixture(t *testing.T) {
	raw, err := testsupport.LoadFixture(filepath.Join("testdata", "manifest.golden.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	parsed, err := parseManifest(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	entry, ok := parsed.lookupPage("/basics/variables")
	if !ok {
		t.Fatal("expected chapter page entry")
	}
	if entry.Hash != "hash-1" || entry.Template != "chapter" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	asset, ok := parsed.lookupAsset("aurora", "css/site.css")
	if !ok {
		t.Fatal("expected asset entry")
	}
	if asset.Checksum != "check-css" || asset.Size != 512 {
		t.Fatalf("unexpected asset %+v", asset)
	}
}

func TestParseManifestEmptyData(t *testing.T) {
	manifest, err := parseManifest(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if manifest == nil || manifest.Pages == nil || manifest.Assets == nil {
		t.Fatal("expected initialized manifest from empty data")
	}
}

func TestShouldSkipPage(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{
		Route:  "/basics/variables",
		Hash:   "hash-1",
		Output: "dist/basics/variables/index.html",
	})

	if !manifest.shouldSkipPage("/basics/variables", "hash-1", "dist/basics/variables/index.html") {
		t.Fatal("expected unchanged page to be skipped")
	}
	if manifest.shouldSkipPage("/basics/variables", "hash-2", "dist/basics/variables/index.html") {
		t.Fatal("expected changed hash to force rebuild")
	}
	if manifest.shouldSkipPage("/basics/variables", "hash-1", "out/basics/variables/index.html") {
		t.Fatal("expected moved output to force rebuild")
	}
	if manifest.shouldSkipPage("/unknown", "hash-1", "dist/unknown/index.html") {
		t.Fatal("expected unknown route to force rebuild")
	}
}

func TestPrunePagesDropsStaleEntries(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Route: "/keep"})
	manifest.setPage(manifestPage{Route: "/stale"})

	manifest.prunePages(map[string]struct{}{manifest.pageKey("/keep"): {}})

	if _, ok := manifest.lookupPage("/keep"); !ok {
		t.Fatal("expected kept entry to survive")
	}
	if _, ok := manifest.lookupPage("/stale"); ok {
		t.Fatal("expected stale entry to be pruned")
	}
}

func TestAssetSkipRequiresMatchingChecksum(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setAsset(manifestAsset{
		Theme:    "aurora",
		Source:   "css/site.css",
		Output:   "dist/assets/css/site.css",
		Checksum: "check-1",
	})

	if !manifest.shouldSkipAsset("aurora", "css/site.css", "check-1", "dist/assets/css/site.css") {
		t.Fatal("expected unchanged asset to be skipped")
	}
	if manifest.shouldSkipAsset("aurora", "css/site.css", "check-2", "dist/assets/css/site.css") {
		t.Fatal("expected changed asset to be copied")
	}
}
