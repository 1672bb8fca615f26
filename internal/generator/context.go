package generator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-book/internal/chapters"
	"github.com/goliatone/go-book/internal/domain"
	gotheme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
)

// ChapterData bundles everything required to render one chapter page.
type ChapterData struct {
	Chapter  *chapters.Chapter
	Part     *chapters.Part
	Route    string
	Template string
	Metadata DependencyMetadata
}

// BuildContext carries the resolved catalog state for a single build run.
type BuildContext struct {
	Chapters    []*ChapterData
	TOC         []TOCPart
	Selection   *gotheme.Selection
	GeneratedAt time.Time
	Options     BuildOptions
}

func (s *service) loadContext(ctx context.Context, opts BuildOptions) (*BuildContext, error) {
	if s.deps.Chapters == nil {
		return nil, errChaptersRequired
	}

	records, err := s.deps.Chapters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: list chapters: %w", err)
	}
	partRecords, err := s.deps.Chapters.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: list parts: %w", err)
	}

	partsByID := make(map[uuid.UUID]*chapters.Part, len(partRecords))
	for _, part := range partRecords {
		partsByID[part.ID] = part
	}

	partFilter := toFilterSet(opts.Parts)
	slugFilter := toFilterSet(opts.Slugs)

	template := strings.TrimSpace(s.cfg.ChapterTemplate)
	if template == "" {
		template = defaultChapterTemplate
	}

	data := make([]*ChapterData, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if !domain.NormalizeStatus(record.Status).IsPublishable() {
			continue
		}

		var part *chapters.Part
		partCode := ""
		if record.PartID != nil {
			if resolved, ok := partsByID[*record.PartID]; ok {
				part = resolved
				partCode = resolved.Code
			}
		}

		if len(partFilter) > 0 {
			if _, ok := partFilter[strings.ToLower(partCode)]; !ok {
				continue
			}
		}
		if len(slugFilter) > 0 {
			if _, ok := slugFilter[strings.ToLower(record.Slug)]; !ok {
				continue
			}
		}

		route, err := s.routes.ChapterRoute(partCode, record.Slug)
		if err != nil {
			return nil, err
		}

		hash := strings.TrimSpace(record.Checksum)
		if hash == "" {
			hash = computeHashFromString(record.Body)
		}

		data = append(data, &ChapterData{
			Chapter:  record,
			Part:     part,
			Route:    route,
			Template: template,
			Metadata: DependencyMetadata{
				Hash:         hash,
				LastModified: record.UpdatedAt,
			},
		})
	}

	sortChapterData(data)

	selection, err := s.themes.Selection()
	if err != nil {
		return nil, err
	}

	return &BuildContext{
		Chapters:    data,
		TOC:         buildTOC(data),
		Selection:   selection,
		GeneratedAt: s.now().UTC(),
		Options:     opts,
	}, nil
}

func sortChapterData(data []*ChapterData) {
	sort.SliceStable(data, func(i, j int) bool {
		a, b := data[i], data[j]
		aw, bw := partWeight(a.Part), partWeight(b.Part)
		if aw != bw {
			return aw < bw
		}
		ac, bc := partCode(a.Part), partCode(b.Part)
		if ac != bc {
			return ac < bc
		}
		if a.Chapter.Weight != b.Chapter.Weight {
			return a.Chapter.Weight < b.Chapter.Weight
		}
		if a.Chapter.Number != b.Chapter.Number {
			return a.Chapter.Number < b.Chapter.Number
		}
		return a.Chapter.Slug < b.Chapter.Slug
	})
}

func buildTOC(data []*ChapterData) []TOCPart {
	toc := make([]TOCPart, 0)
	index := map[string]int{}
	for _, item := range data {
		code := partCode(item.Part)
		pos, ok := index[code]
		if !ok {
			part := TOCPart{Code: code}
			if item.Part != nil {
				part.Title = item.Part.Title
				part.Weight = item.Part.Weight
			}
			toc = append(toc, part)
			pos = len(toc) - 1
			index[code] = pos
		}
		entry := TOCEntry{
			Slug:   item.Chapter.Slug,
			Title:  item.Chapter.Title,
			Number: item.Chapter.Number,
			Route:  item.Route,
		}
		if item.Chapter.Summary != nil {
			entry.Summary = *item.Chapter.Summary
		}
		toc[pos].Entries = append(toc[pos].Entries, entry)
	}
	return toc
}

func partWeight(part *chapters.Part) int {
	if part == nil {
		return 0
	}
	return part.Weight
}

func partCode(part *chapters.Part) string {
	if part == nil {
		return ""
	}
	return part.Code
}

func toFilterSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}
