package chapters

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunChapterRepository persists chapters through go-repository-bun, with
// snippet replacement handled in the same transaction as chapter writes.
type BunChapterRepository struct {
	db   *bun.DB
	repo repository.Repository[*Chapter]
}

// NewBunChapterRepository builds a repository without caching.
func NewBunChapterRepository(db *bun.DB) *BunChapterRepository {
	return NewBunChapterRepositoryWithCache(db, nil, nil)
}

// NewBunChapterRepositoryWithCache constructs a ChapterRepository with optional caching.
func NewBunChapterRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunChapterRepository {
	base := newChapterModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunChapterRepository{db: db, repo: wrapped}
}

func (r *BunChapterRepository) Create(ctx context.Context, record *Chapter) (*Chapter, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().
			Model(record).
			Exec(ctx); err != nil {
			return mapRepositoryError(err, "chapter", record.Slug)
		}
		return replaceSnippetsTx(ctx, tx, record.ID, record.Snippets)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunChapterRepository) Update(ctx context.Context, record *Chapter) (*Chapter, error) {
	record.UpdatedAt = time.Now().UTC()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(record).
			Column(
				"part_id",
				"slug",
				"title",
				"summary",
				"number",
				"weight",
				"status",
				"body",
				"body_html",
				"checksum",
				"tags",
				"languages",
				"metadata",
				"updated_by",
				"updated_at",
			).
			WherePK().
			Exec(ctx)
		if err != nil {
			return mapRepositoryError(err, "chapter", record.Slug)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{Resource: "chapter", Key: record.Slug}
		}
		return replaceSnippetsTx(ctx, tx, record.ID, record.Snippets)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*Chapter, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "chapter", id.String())
	}
	if err := r.loadSnippets(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunChapterRepository) GetBySlug(ctx context.Context, slug string) (*Chapter, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "chapter", slug)
	}
	if err := r.loadSnippets(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunChapterRepository) List(ctx context.Context) ([]*Chapter, error) {
	var records []*Chapter
	err := r.db.NewSelect().
		Model(&records).
		Relation("Snippets").
		Order("weight ASC", "number ASC", "slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "chapter", "list")
	}
	return records, nil
}

func (r *BunChapterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Snippet)(nil)).
			Where("chapter_id = ?", id).
			Exec(ctx); err != nil {
			return mapRepositoryError(err, "snippet", id.String())
		}
		res, err := tx.NewDelete().
			Model((*Chapter)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return mapRepositoryError(err, "chapter", id.String())
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return &NotFoundError{Resource: "chapter", Key: id.String()}
		}
		return nil
	})
}

func replaceSnippetsTx(ctx context.Context, tx bun.IDB, chapterID uuid.UUID, snippets []*Snippet) error {
	if _, err := tx.NewDelete().
		Model((*Snippet)(nil)).
		Where("chapter_id = ?", chapterID).
		Exec(ctx); err != nil {
		return mapRepositoryError(err, "snippet", chapterID.String())
	}
	if len(snippets) == 0 {
		return nil
	}
	if _, err := tx.NewInsert().
		Model(&snippets).
		Exec(ctx); err != nil {
		return mapRepositoryError(err, "snippet", chapterID.String())
	}
	return nil
}

func (r *BunChapterRepository) loadSnippets(ctx context.Context, record *Chapter) error {
	if record == nil {
		return nil
	}
	var snippets []*Snippet
	err := r.db.NewSelect().
		Model(&snippets).
		Where("chapter_id = ?", record.ID).
		Order("line ASC").
		Scan(ctx)
	if err != nil {
		return mapRepositoryError(err, "snippet", record.ID.String())
	}
	record.Snippets = snippets
	return nil
}

// BunPartRepository persists book parts.
type BunPartRepository struct {
	repo repository.Repository[*Part]
}

// NewBunPartRepository builds a part repository without caching.
func NewBunPartRepository(db *bun.DB) *BunPartRepository {
	return NewBunPartRepositoryWithCache(db, nil, nil)
}

// NewBunPartRepositoryWithCache constructs a PartRepository with optional caching.
func NewBunPartRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPartRepository {
	base := newPartModelRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPartRepository{repo: wrapped}
}

func (r *BunPartRepository) Upsert(ctx context.Context, record *Part) (*Part, error) {
	existing, err := r.repo.GetByIdentifier(ctx, record.Code)
	if err == nil && existing != nil {
		record.ID = existing.ID
		updated, updateErr := r.repo.Update(ctx, record)
		if updateErr != nil {
			return nil, mapRepositoryError(updateErr, "part", record.Code)
		}
		return updated, nil
	}

	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "part", record.Code)
	}
	return created, nil
}

func (r *BunPartRepository) GetByCode(ctx context.Context, code string) (*Part, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "part", code)
	}
	return result, nil
}

func (r *BunPartRepository) List(ctx context.Context) ([]*Part, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, mapRepositoryError(err, "part", "list")
	}
	return records, nil
}

func newChapterModelRepository(db *bun.DB) repository.Repository[*Chapter] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Chapter]{
		NewRecord: func() *Chapter { return &Chapter{} },
		GetID: func(ch *Chapter) uuid.UUID {
			return ch.ID
		},
		SetID: func(ch *Chapter, id uuid.UUID) {
			ch.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(ch *Chapter) string {
			return ch.Slug
		},
	})
}

func newPartModelRepository(db *bun.DB) repository.Repository[*Part] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Part]{
		NewRecord: func() *Part { return &Part{} },
		GetID: func(p *Part) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Part, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(p *Part) string {
			return p.Code
		},
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
