package lint

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleSlugUnique is the rule ID for duplicate slug detection.
const RuleSlugUnique = "slug-unique"

// slugUniqueRule reports chapter files that resolve to a slug already claimed
// by an earlier file. Files without a declared slug use the file name stem,
// matching the importer's behaviour.
type slugUniqueRule struct {
	severity interfaces.Severity
}

func newSlugUniqueRule(severity interfaces.Severity) *slugUniqueRule {
	return &slugUniqueRule{severity: severity}
}

func (r *slugUniqueRule) ID() string { return RuleSlugUnique }

func (r *slugUniqueRule) CheckCorpus(ins []*Input) []interfaces.Diagnostic {
	seen := map[string]string{}
	var out []interfaces.Diagnostic

	for _, in := range ins {
		slug := effectiveSlug(in.Doc)
		if slug == "" {
			continue
		}
		if first, ok := seen[slug]; ok {
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: r.severity,
				File:     in.path(),
				Message:  fmt.Sprintf("slug %q is already used by %s", slug, first),
			})
			continue
		}
		seen[slug] = in.path()
	}
	return out
}

func effectiveSlug(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	if slug := strings.TrimSpace(doc.FrontMatter.Slug); slug != "" {
		return strings.ToLower(slug)
	}
	base := doc.FilePath
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".md")
	base = strings.TrimSuffix(base, ".markdown")
	return strings.ToLower(strings.TrimSpace(base))
}
