package domain

import internaldomain "github.com/goliatone/go-book/internal/domain"

// Status represents lifecycle states for book entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a chapter still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a chapter available to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks a chapter that is retained for history but not rendered.
	StatusArchived = internaldomain.StatusArchived
)
