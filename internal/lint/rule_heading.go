package lint

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleHeadingNumbering is the rule ID for the chapter heading checks.
const RuleHeadingNumbering = "heading-numbering"

var chapterHeadingRe = regexp.MustCompile(`^# Chapter (\d+): \S`)

// headingNumberingRule checks that each file's H1 reads "Chapter N: Title"
// and, across the whole book, that N values are unique and consecutive.
type headingNumberingRule struct {
	severity interfaces.Severity
}

func newHeadingNumberingRule(severity interfaces.Severity) *headingNumberingRule {
	return &headingNumberingRule{severity: severity}
}

func (r *headingNumberingRule) ID() string { return RuleHeadingNumbering }

func (r *headingNumberingRule) Check(in *Input) []interfaces.Diagnostic {
	heading, line := chapterHeading(in)
	if heading == "" {
		return []interfaces.Diagnostic{{
			Rule:     r.ID(),
			Severity: r.severity,
			File:     in.path(),
			Message:  "file has no top-level chapter heading",
		}}
	}

	match := chapterHeadingRe.FindStringSubmatch(heading)
	if match == nil {
		return []interfaces.Diagnostic{{
			Rule:     r.ID(),
			Severity: r.severity,
			File:     in.path(),
			Line:     in.FileLine(line),
			Message:  fmt.Sprintf("heading %q does not follow \"Chapter N: Title\"", heading),
		}}
	}

	var out []interfaces.Diagnostic
	number, _ := strconv.Atoi(match[1])
	if fm := in.Doc.FrontMatter.Chapter; fm != 0 && fm != number {
		out = append(out, interfaces.Diagnostic{
			Rule:     r.ID(),
			Severity: interfaces.SeverityWarning,
			File:     in.path(),
			Line:     in.FileLine(line),
			Message:  fmt.Sprintf("heading says chapter %d but frontmatter says %d", number, fm),
		})
	}
	return out
}

func (r *headingNumberingRule) CheckCorpus(ins []*Input) []interfaces.Diagnostic {
	type numbered struct {
		number int
		file   string
		line   int
	}

	var chapters []numbered
	for _, in := range ins {
		heading, line := chapterHeading(in)
		match := chapterHeadingRe.FindStringSubmatch(heading)
		if match == nil {
			continue
		}
		number, _ := strconv.Atoi(match[1])
		chapters = append(chapters, numbered{number: number, file: in.path(), line: in.FileLine(line)})
	}

	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].number != chapters[j].number {
			return chapters[i].number < chapters[j].number
		}
		return chapters[i].file < chapters[j].file
	})

	var out []interfaces.Diagnostic
	for i := 1; i < len(chapters); i++ {
		prev, curr := chapters[i-1], chapters[i]
		switch {
		case curr.number == prev.number:
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: r.severity,
				File:     curr.file,
				Line:     curr.line,
				Message:  fmt.Sprintf("chapter %d is already used by %s", curr.number, prev.file),
			})
		case curr.number > prev.number+1:
			out = append(out, interfaces.Diagnostic{
				Rule:     r.ID(),
				Severity: r.severity,
				File:     curr.file,
				Line:     curr.line,
				Message:  fmt.Sprintf("chapter numbers jump from %d to %d", prev.number, curr.number),
			})
		}
	}
	return out
}

// chapterHeading returns the first H1 outside fenced code, with its
// body-relative line number.
func chapterHeading(in *Input) (string, int) {
	lines := strings.Split(in.body, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		if in.isFenced(i + 1) {
			continue
		}
		return strings.TrimRight(line, " \t"), i + 1
	}
	return "", 0
}
