package chapters

import (
	"context"

	"github.com/google/uuid"
)

// ChapterRepository abstracts chapter persistence so the service can run on
// memory or bun-backed stores.
type ChapterRepository interface {
	Create(ctx context.Context, record *Chapter) (*Chapter, error)
	Update(ctx context.Context, record *Chapter) (*Chapter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Chapter, error)
	GetBySlug(ctx context.Context, slug string) (*Chapter, error)
	List(ctx context.Context) ([]*Chapter, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartRepository abstracts part persistence.
type PartRepository interface {
	Upsert(ctx context.Context, record *Part) (*Part, error)
	GetByCode(ctx context.Context, code string) (*Part, error)
	List(ctx context.Context) ([]*Part, error)
}
