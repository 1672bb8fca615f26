package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "book.markdown.import_directory"
	syncDirectoryMessageType   = "book.markdown.sync_directory"
)

// ImportDirectoryCommand triggers a filesystem walk for chapter documents
// under the provided Directory. The command mirrors markdown.Service
// ImportDirectory semantics, allowing callers to supply import options that
// map directly onto interfaces.ImportOptions for catalog creation.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load chapter files from.
	Directory string `json:"directory"`
	// AuthorID records the actor reference on created catalog entries.
	AuthorID string `json:"author_id,omitempty"`
	// Publish marks imported chapters as published instead of draft.
	Publish bool `json:"publish,omitempty"`
	// SkipDraft leaves chapters whose front matter declares draft status untouched.
	SkipDraft bool `json:"skip_draft,omitempty"`
	// DryRun toggles preview mode to collect import diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("book.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand orchestrates a chapter sync run for the provided
// Directory, applying deletion or update flags consistent with
// interfaces.SyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load chapter files from.
	Directory string `json:"directory"`
	// AuthorID records the actor reference on created catalog entries.
	AuthorID string `json:"author_id,omitempty"`
	// Publish marks imported chapters as published instead of draft.
	Publish bool `json:"publish,omitempty"`
	// SkipDraft leaves chapters whose front matter declares draft status untouched.
	SkipDraft bool `json:"skip_draft,omitempty"`
	// DryRun toggles preview mode to collect sync diffs without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes catalog records without matching chapter files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// UpdateExisting overwrites existing catalog records when chapter files have changed.
	UpdateExisting bool `json:"update_existing,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("book.markdown.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
