package lintcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-book/pkg/interfaces"
)

const lintBookMessageType = "book.lint.run"

// ResultCallback receives the lint report produced by a run. The callback is
// optional and is invoked synchronously from the handler.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a lint command execution.
type ResultEnvelope struct {
	Report   *interfaces.LintReport
	Metadata map[string]any
}

// LintBookCommand runs the structural checks against every chapter file under
// the provided Directory.
type LintBookCommand struct {
	// Directory selects the filesystem path (relative or absolute) holding the chapter files.
	Directory string `json:"directory"`
	// FailOnWarnings treats warning diagnostics as run failures.
	FailOnWarnings bool `json:"fail_on_warnings,omitempty"`
	// ResultCallback receives the lint report when the run completes.
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (LintBookCommand) Type() string { return lintBookMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd LintBookCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("book.lint.run.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	LintEnabled func() bool
}

func (g FeatureGates) lintEnabled() bool {
	if g.LintEnabled == nil {
		return true
	}
	return g.LintEnabled()
}
