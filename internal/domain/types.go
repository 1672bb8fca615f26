package domain

// Status represents lifecycle states for book entities
type Status string

const (
	// StatusDraft indicates a chapter still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies a chapter available to readers
	StatusPublished Status = "published"
	// StatusArchived marks a chapter retained for history but not rendered
	StatusArchived Status = "archived"
)

// NormalizeStatus coerces arbitrary status strings into a known value,
// defaulting to draft.
func NormalizeStatus(input string) Status {
	switch Status(input) {
	case StatusDraft, StatusPublished, StatusArchived:
		return Status(input)
	default:
		return StatusDraft
	}
}

// IsPublishable reports whether the status allows the chapter to appear in
// generated output.
func (s Status) IsPublishable() bool {
	return s == StatusPublished
}
