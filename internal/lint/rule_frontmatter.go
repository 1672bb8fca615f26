package lint

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-book/chapters"
	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleFrontMatterRequired is the rule ID for the frontmatter completeness check.
const RuleFrontMatterRequired = "frontmatter-required"

// frontMatterRule requires a title, and a well-formed slug when one is
// declared. A missing slug is only a warning because the importer derives one
// from the file name.
type frontMatterRule struct {
	severity interfaces.Severity
}

func newFrontMatterRule(severity interfaces.Severity) *frontMatterRule {
	return &frontMatterRule{severity: severity}
}

func (r *frontMatterRule) ID() string { return RuleFrontMatterRequired }

func (r *frontMatterRule) Check(in *Input) []interfaces.Diagnostic {
	var out []interfaces.Diagnostic
	fm := in.Doc.FrontMatter

	if strings.TrimSpace(fm.Title) == "" {
		out = append(out, interfaces.Diagnostic{
			Rule:     r.ID(),
			Severity: r.severity,
			File:     in.path(),
			Message:  "frontmatter is missing a title",
		})
	}

	slug := strings.TrimSpace(fm.Slug)
	switch {
	case slug == "":
		out = append(out, interfaces.Diagnostic{
			Rule:     r.ID(),
			Severity: interfaces.SeverityWarning,
			File:     in.path(),
			Message:  "frontmatter has no slug; one will be derived from the file name",
		})
	case !chapters.IsValidSlug(slug):
		out = append(out, interfaces.Diagnostic{
			Rule:     r.ID(),
			Severity: r.severity,
			File:     in.path(),
			Message:  fmt.Sprintf("frontmatter slug %q is not a valid slug", slug),
		})
	}

	return out
}
