package chapters

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes chapter catalog use cases.
type Service interface {
	Create(ctx context.Context, req CreateChapterRequest) (*Chapter, error)
	Update(ctx context.Context, req UpdateChapterRequest) (*Chapter, error)
	Get(ctx context.Context, id uuid.UUID) (*Chapter, error)
	GetBySlug(ctx context.Context, slug string) (*Chapter, error)
	List(ctx context.Context) ([]*Chapter, error)
	Delete(ctx context.Context, req DeleteChapterRequest) error
	EnsurePart(ctx context.Context, code, title string, weight int) (*Part, error)
	ListParts(ctx context.Context) ([]*Part, error)
}

// CreateChapterRequest captures the fields required to create a chapter.
type CreateChapterRequest struct {
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

// UpdateChapterRequest captures the mutable fields for an existing chapter.
type UpdateChapterRequest struct {
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

// DeleteChapterRequest captures the information required to remove a chapter.
type DeleteChapterRequest struct {
	ID         uuid.UUID
	DeletedBy  string
	HardDelete bool
}

// SnippetInput represents an extracted fenced code block provided during
// create/update. Snippets are replaced wholesale on update.
type SnippetInput struct {
	Language string
	Source   string
	Line     int
}
