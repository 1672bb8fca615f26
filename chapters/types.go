package chapters

import (
	"time"

	"github.com/goliatone/go-book/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Part groups chapters into the book's top level sections.
type Part struct {
	bun.BaseModel `bun:"table:parts,alias:p"`

	ID        uuid.UUID  `bun:",pk,type:uuid"        json:"id"`
	Code      string     `bun:"code,notnull"         json:"code"`
	Title     string     `bun:"title,notnull"        json:"title"`
	Weight    int        `bun:"weight,notnull,default:0" json:"weight"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"  json:"deleted_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Chapter is the canonical record for a book chapter.
type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	PartID    *uuid.UUID     `bun:"part_id,type:uuid,nullzero" json:"part_id,omitempty"`
	Slug      string         `bun:"slug,notnull" json:"slug"`
	Title     string         `bun:"title,notnull" json:"title"`
	Summary   *string        `bun:"summary" json:"summary,omitempty"`
	Number    int            `bun:"number,notnull,default:0" json:"number"`
	Weight    int            `bun:"weight,notnull,default:0" json:"weight"`
	Status    string         `bun:"status,notnull,default:'draft'" json:"status"`
	Body      string         `bun:"body,notnull" json:"body"`
	BodyHTML  string         `bun:"body_html" json:"body_html,omitempty"`
	Checksum  string         `bun:"checksum" json:"checksum,omitempty"`
	Tags      []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Languages []string       `bun:"languages,type:jsonb" json:"languages,omitempty"`
	Metadata  map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedBy string         `bun:"created_by" json:"created_by,omitempty"`
	UpdatedBy string         `bun:"updated_by" json:"updated_by,omitempty"`
	DeletedAt *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Part     *Part      `bun:"rel:belongs-to,join:part_id=id" json:"part,omitempty"`
	Snippets []*Snippet `bun:"rel:has-many,join:id=chapter_id" json:"snippets,omitempty"`

	EffectiveStatus domain.Status `bun:"-" json:"effective_status"`
}

// Snippet stores a fenced code block extracted from a chapter body.
type Snippet struct {
	bun.BaseModel `bun:"table:snippets,alias:sn"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ChapterID uuid.UUID `bun:"chapter_id,notnull,type:uuid" json:"chapter_id"`
	Language  string    `bun:"language,notnull" json:"language"`
	Source    string    `bun:"source,notnull" json:"source"`
	Line      int       `bun:"line,notnull,default:0" json:"line"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Chapter *Chapter `bun:"rel:belongs-to,join:chapter_id=id" json:"chapter,omitempty"`
}
