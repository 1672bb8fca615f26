package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// ChapterService abstracts the catalog so markdown imports can provision or
// update chapter records without depending on internal implementations.
type ChapterService interface {
	Create(ctx context.Context, req ChapterCreateRequest) (*ChapterRecord, error)
	Update(ctx context.Context, req ChapterUpdateRequest) (*ChapterRecord, error)
	GetBySlug(ctx context.Context, slug string) (*ChapterRecord, error)
	List(ctx context.Context) ([]*ChapterRecord, error)
	Delete(ctx context.Context, req ChapterDeleteRequest) error
}

// ChapterCreateRequest captures the details required to create a chapter record.
type ChapterCreateRequest struct {
	Slug      string
	Title     string
	Summary   *string
	Number    int
	Part      string
	Weight    int
	Status    string
	Body      string
	BodyHTML  string
	Checksum  string
	Tags      []string
	Languages []string
	Snippets  []SnippetInput
	Metadata  map[string]any
	CreatedBy string
}

// ChapterUpdateRequest captures the mutable fields for an existing chapter.
type ChapterUpdateRequest struct {
	ID        uuid.UUID
	Title     string
	Summary   *string
	Number    int
	Part      string
	Weight    int
	Status    string
	Body      string
	BodyHTML  string
	Checksum  string
	Tags      []string
	Languages []string
	Snippets  []SnippetInput
	Metadata  map[string]any
	UpdatedBy string
}

// ChapterDeleteRequest captures the information required to remove a chapter.
// When HardDelete is false, implementations may opt for soft-deletion where
// supported.
type ChapterDeleteRequest struct {
	ID         uuid.UUID
	DeletedBy  string
	HardDelete bool
}

// SnippetInput represents an extracted fenced code block provided during
// chapter create/update.
type SnippetInput struct {
	Language string
	Source   string
	Line     int
}

// ChapterRecord reflects the persisted state returned by the chapter service.
type ChapterRecord struct {
	ID        uuid.UUID
	Slug      string
	Title     string
	Summary   *string
	Number    int
	Part      string
	Weight    int
	Status    string
	Checksum  string
	Tags      []string
	Languages []string
	Metadata  map[string]any
}
