package chapters

import bookchapters "github.com/goliatone/go-book/chapters"

type (
	Part    = bookchapters.Part
	Chapter = bookchapters.Chapter
	Snippet = bookchapters.Snippet

	CreateChapterRequest = bookchapters.CreateChapterRequest
	UpdateChapterRequest = bookchapters.UpdateChapterRequest
	DeleteChapterRequest = bookchapters.DeleteChapterRequest
	SnippetInput         = bookchapters.SnippetInput

	NotFoundError     = bookchapters.NotFoundError
	SlugConflictError = bookchapters.SlugConflictError
)

var (
	ErrSlugRequired          = bookchapters.ErrSlugRequired
	ErrSlugInvalid           = bookchapters.ErrSlugInvalid
	ErrSlugExists            = bookchapters.ErrSlugExists
	ErrTitleRequired         = bookchapters.ErrTitleRequired
	ErrChapterIDRequired     = bookchapters.ErrChapterIDRequired
	ErrStatusInvalid         = bookchapters.ErrStatusInvalid
	ErrMetadataInvalid       = bookchapters.ErrMetadataInvalid
	ErrPartCodeRequired      = bookchapters.ErrPartCodeRequired
	ErrSoftDeleteUnsupported = bookchapters.ErrSoftDeleteUnsupported
)

// IsNotFound re-exports the public not-found check for internal callers.
var IsNotFound = bookchapters.IsNotFound

// Service re-exports the public service contract for internal wiring.
type Service = bookchapters.Service
