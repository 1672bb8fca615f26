package chapters

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired     = errors.New("chapters: slug is required")
	ErrSlugInvalid      = errors.New("chapters: slug contains invalid characters")
	ErrSlugExists       = errors.New("chapters: slug already exists")
	ErrTitleRequired    = errors.New("chapters: title is required")
	ErrChapterIDRequired = errors.New("chapters: chapter id required")
	ErrStatusInvalid    = errors.New("chapters: status invalid")
	ErrMetadataInvalid  = errors.New("chapters: metadata invalid")
	ErrPartCodeRequired = errors.New("chapters: part code is required")
	ErrSoftDeleteUnsupported = errors.New("chapters: soft delete not supported")
)

// NotFoundError reports lookups that matched no record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "chapters: not found"
	}
	return fmt.Sprintf("chapters: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether an error marks a missing record.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// SlugConflictError carries the conflicting slug for reporting.
type SlugConflictError struct {
	Slug string
}

func (e *SlugConflictError) Error() string {
	if e == nil {
		return ErrSlugExists.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSlugExists.Error(), e.Slug)
}

func (e *SlugConflictError) Unwrap() error {
	return ErrSlugExists
}
