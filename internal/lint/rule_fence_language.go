package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleFenceLanguage is the rule ID for the language tag and plausibility check.
const RuleFenceLanguage = "fence-language"

// fenceLanguageRule verifies that fenced blocks carry an allowed language tag
// and that ruby/python blocks lexically resemble their declared language. The
// plausibility check is a marker scan, not a grammar; it exists to catch
// swapped or mislabelled snippets, the common editing mistake in a
// two-language book.
type fenceLanguageRule struct {
	severity interfaces.Severity
	allowed  map[string]struct{}
}

func newFenceLanguageRule(severity interfaces.Severity, allowedTags []string) *fenceLanguageRule {
	allowed := make(map[string]struct{}, len(allowedTags))
	for _, tag := range allowedTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			allowed[tag] = struct{}{}
		}
	}
	return &fenceLanguageRule{severity: severity, allowed: allowed}
}

func (r *fenceLanguageRule) ID() string { return RuleFenceLanguage }

func (r *fenceLanguageRule) Check(in *Input) []interfaces.Diagnostic {
	var out []interfaces.Diagnostic

	for _, block := range in.fences {
		line := in.FileLine(block.Line)

		if block.Lang == "" {
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: interfaces.SeverityWarning,
				File:     in.path(),
				Line:     line,
				Message:  "code fence has no language tag",
			})
			continue
		}

		if len(r.allowed) > 0 {
			if _, ok := r.allowed[block.Lang]; !ok {
				out = append(out, interfaces.Diagnostic{
					Rule:     r.ID(),
					Severity: interfaces.SeverityWarning,
					File:     in.path(),
					Line:     line,
					Message:  fmt.Sprintf("language tag %q is not in the allowed set", block.Lang),
				})
				continue
			}
		}

		if reason := implausibleReason(block.Lang, block.Content); reason != "" {
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: r.severity,
				File:     in.path(),
				Line:     line,
				Message:  fmt.Sprintf("block tagged %q %s", block.Lang, reason),
			})
		}
	}
	return out
}

// implausibleReason returns a human-readable explanation when the block
// content does not look like the tagged language, or "" when it passes.
func implausibleReason(lang string, content []string) string {
	switch lang {
	case "ruby":
		rubyScore := scoreMarkers(content, rubyMarkers)
		pythonScore := scoreMarkers(content, pythonMarkers)
		if pythonScore >= 2 && pythonScore > rubyScore {
			return "looks like python code"
		}
		if opens, ends := rubyBlockBalance(content); opens != ends {
			return fmt.Sprintf("has unbalanced ruby blocks (%d openers, %d ends)", opens, ends)
		}
	case "python":
		rubyScore := scoreMarkers(content, rubyMarkers)
		pythonScore := scoreMarkers(content, pythonMarkers)
		if rubyScore >= 2 && rubyScore > pythonScore {
			return "looks like ruby code"
		}
		if line := pythonIndentOffense(content); line > 0 {
			return fmt.Sprintf("has a block header with no indented body (content line %d)", line)
		}
	}
	return ""
}

var rubyMarkers = []*regexp.Regexp{
	regexp.MustCompile(`^\s*end\b`),
	regexp.MustCompile(`\bputs\b`),
	regexp.MustCompile(`\bdo\s*(\|[^|]*\|)?\s*$`),
	regexp.MustCompile(`@\w+`),
	regexp.MustCompile(`#\{`),
	regexp.MustCompile(`=>`),
	regexp.MustCompile(`\belsif\b`),
	regexp.MustCompile(`\bunless\b`),
	regexp.MustCompile(`\bnil\b`),
	regexp.MustCompile(`^\s*require\s+['"]`),
	regexp.MustCompile(`^\s*def\s+\w+[^:]*$`),
	regexp.MustCompile(`\.\w+\s*\{\s*\|`),
}

var pythonMarkers = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(def|class)\s+\w+.*:\s*$`),
	regexp.MustCompile(`^\s*import\s+\w+`),
	regexp.MustCompile(`^\s*from\s+\w+[\w.]*\s+import\b`),
	regexp.MustCompile(`\bself\.`),
	regexp.MustCompile(`\bprint\(`),
	regexp.MustCompile(`\belif\b`),
	regexp.MustCompile(`\bNone\b`),
	regexp.MustCompile(`\blambda\b`),
	regexp.MustCompile(`\b__\w+__\b`),
	regexp.MustCompile(`\bf["']`),
}

func scoreMarkers(content []string, markers []*regexp.Regexp) int {
	score := 0
	for _, line := range content {
		for _, marker := range markers {
			if marker.MatchString(line) {
				score++
			}
		}
	}
	return score
}

var (
	rubyOpenerRe = regexp.MustCompile(`^\s*(def|class|module|if|unless|case|begin|while|until|for)\b`)
	rubyDoRe     = regexp.MustCompile(`\bdo\s*(\|[^|]*\|)?\s*$`)
	rubyEndRe    = regexp.MustCompile(`^\s*end\b`)
)

// rubyBlockBalance counts block openers against end keywords. Single-line
// bodies and modifier conditionals are not openers because the scan anchors
// at line start and requires the line to end the statement.
func rubyBlockBalance(content []string) (opens, ends int) {
	for _, line := range content {
		trimmed := strings.TrimRight(line, " \t")
		if rubyEndRe.MatchString(trimmed) {
			ends++
			continue
		}
		if rubyOpenerRe.MatchString(trimmed) && !strings.Contains(trimmed, " end") {
			opens++
			continue
		}
		if rubyDoRe.MatchString(trimmed) {
			opens++
		}
	}
	return opens, ends
}

var pythonHeaderRe = regexp.MustCompile(`^(\s*)(def|class|if|elif|else|for|while|try|except|finally|with)\b.*:\s*$`)

// pythonIndentOffense returns the 1-based content line of the first block
// header that is not followed by a more-indented line, or 0 when all headers
// have bodies.
func pythonIndentOffense(content []string) int {
	for i, line := range content {
		match := pythonHeaderRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		headerIndent := len(match[1])

		body := false
		for j := i + 1; j < len(content); j++ {
			next := content[j]
			if strings.TrimSpace(next) == "" {
				continue
			}
			indent := len(next) - len(strings.TrimLeft(next, " \t"))
			body = indent > headerIndent
			break
		}
		if !body {
			return i + 1
		}
	}
	return 0
}
