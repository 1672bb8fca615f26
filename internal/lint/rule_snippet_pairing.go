package lint

import (
	"fmt"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleSnippetPairing is the rule ID for the language track pairing check.
const RuleSnippetPairing = "snippet-pairing"

// snippetPairingRule warns when a chapter shows code for one tracked language
// but not the other. A comparison book should demonstrate both sides.
type snippetPairingRule struct {
	severity  interfaces.Severity
	languages []string
}

func newSnippetPairingRule(severity interfaces.Severity, languages []string) *snippetPairingRule {
	return &snippetPairingRule{severity: severity, languages: languages}
}

func (r *snippetPairingRule) ID() string { return RuleSnippetPairing }

func (r *snippetPairingRule) Check(in *Input) []interfaces.Diagnostic {
	if len(r.languages) < 2 {
		return nil
	}

	counts := map[string]int{}
	for _, snippet := range in.Doc.Snippets {
		counts[snippet.Language]++
	}

	total := 0
	for _, lang := range r.languages {
		total += counts[lang]
	}
	if total == 0 {
		return nil
	}

	var out []interfaces.Diagnostic
	for _, lang := range r.languages {
		if counts[lang] == 0 {
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: r.severity,
				File:     in.path(),
				Message:  fmt.Sprintf("chapter shows code for %s but none for %s", otherLanguages(r.languages, lang), lang),
			})
		}
	}
	return out
}

func otherLanguages(languages []string, missing string) string {
	var present []string
	for _, lang := range languages {
		if lang != missing {
			present = append(present, lang)
		}
	}
	if len(present) == 0 {
		return "the other track"
	}
	out := present[0]
	for _, lang := range present[1:] {
		out += ", " + lang
	}
	return out
}
