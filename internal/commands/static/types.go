package staticcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-book/internal/generator"
)

const (
	buildSiteMessageType = "book.static.build"
	cleanSiteMessageType = "book.static.clean"
)

// ResultCallback receives build results produced by generator operations. The callback is
// optional and is invoked synchronously from the handler when a BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a static command execution that generated a BuildResult.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build using the provided filters.
type BuildSiteCommand struct {
	Parts          []string       `json:"parts,omitempty"`
	Slugs          []string       `json:"slugs,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures part and slug filters are well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, part := range m.Parts {
		if strings.TrimSpace(part) == "" {
			errs["parts"] = validation.NewError("book.static.build.part_invalid", "parts must not contain empty values")
			break
		}
	}
	for _, slug := range m.Slugs {
		if strings.TrimSpace(slug) == "" {
			errs["slugs"] = validation.NewError("book.static.build.slug_invalid", "slugs must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand clears generator artifacts from the configured storage backend.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}
