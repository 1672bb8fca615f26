package chapters

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryChapterRepository is an in-memory implementation for scaffolding and tests.
type MemoryChapterRepository struct {
	mu        sync.RWMutex
	chapters  map[uuid.UUID]*Chapter
	slugIndex map[string]uuid.UUID
}

// NewMemoryChapterRepository creates an empty in-memory chapter repository.
func NewMemoryChapterRepository() *MemoryChapterRepository {
	return &MemoryChapterRepository{
		chapters:  make(map[uuid.UUID]*Chapter),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied chapter.
func (m *MemoryChapterRepository) Create(_ context.Context, record *Chapter) (*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slugIndex[record.Slug]; ok {
		return nil, &SlugConflictError{Slug: record.Slug}
	}

	copied := cloneChapter(record)
	m.chapters[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneChapter(copied), nil
}

// Update replaces the stored chapter, snippets included.
func (m *MemoryChapterRepository) Update(_ context.Context, record *Chapter) (*Chapter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.chapters[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: record.ID.String()}
	}
	if existing.Slug != record.Slug {
		if _, taken := m.slugIndex[record.Slug]; taken {
			return nil, &SlugConflictError{Slug: record.Slug}
		}
		delete(m.slugIndex, existing.Slug)
		m.slugIndex[record.Slug] = record.ID
	}

	copied := cloneChapter(record)
	m.chapters[copied.ID] = copied
	return cloneChapter(copied), nil
}

// GetByID retrieves a chapter by identifier.
func (m *MemoryChapterRepository) GetByID(_ context.Context, id uuid.UUID) (*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.chapters[id]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: id.String()}
	}
	return cloneChapter(rec), nil
}

// GetBySlug retrieves a chapter by slug, returning NotFoundError when absent.
func (m *MemoryChapterRepository) GetBySlug(_ context.Context, slug string) (*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "chapter", Key: slug}
	}
	return cloneChapter(m.chapters[id]), nil
}

// List returns all chapters ordered by weight, number, then slug.
func (m *MemoryChapterRepository) List(_ context.Context) ([]*Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Chapter, 0, len(m.chapters))
	for _, rec := range m.chapters {
		out = append(out, cloneChapter(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// Delete removes a chapter and its snippets.
func (m *MemoryChapterRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.chapters[id]
	if !ok {
		return &NotFoundError{Resource: "chapter", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.chapters, id)
	return nil
}

func cloneChapter(src *Chapter) *Chapter {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Tags = append([]string(nil), src.Tags...)
	copied.Languages = append([]string(nil), src.Languages...)
	copied.Metadata = cloneMap(src.Metadata)
	if len(src.Snippets) > 0 {
		copied.Snippets = make([]*Snippet, len(src.Snippets))
		for i, sn := range src.Snippets {
			if sn == nil {
				continue
			}
			local := *sn
			copied.Snippets[i] = &local
		}
	}
	return &copied
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

// MemoryPartRepository stores parts in-memory.
type MemoryPartRepository struct {
	mu    sync.RWMutex
	parts map[string]*Part
}

// NewMemoryPartRepository constructs the repository.
func NewMemoryPartRepository() *MemoryPartRepository {
	return &MemoryPartRepository{parts: map[string]*Part{}}
}

// Upsert inserts or replaces a part keyed by code.
func (m *MemoryPartRepository) Upsert(_ context.Context, record *Part) (*Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.parts[strings.ToLower(record.Code)] = &copied
	local := copied
	return &local, nil
}

// GetByCode retrieves a part by its code.
func (m *MemoryPartRepository) GetByCode(_ context.Context, code string) (*Part, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.parts[strings.ToLower(code)]
	if !ok {
		return nil, &NotFoundError{Resource: "part", Key: code}
	}
	copied := *rec
	return &copied, nil
}

// List returns all parts ordered by weight then code.
func (m *MemoryPartRepository) List(_ context.Context) ([]*Part, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Part, 0, len(m.parts))
	for _, rec := range m.parts {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}
