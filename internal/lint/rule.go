package lint

import (
	"strings"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// Input bundles everything a rule may inspect for one chapter file. Fences
// are scanned once per file and shared across rules.
type Input struct {
	Doc    *interfaces.Document
	Source []byte

	body   string
	fences []fenceBlock
	// lineOffset converts body-relative line numbers to file line numbers,
	// accounting for the frontmatter block.
	lineOffset int
}

func newInput(doc *interfaces.Document, source []byte) *Input {
	body := ""
	if doc != nil {
		body = string(doc.Body)
	}

	offset := 0
	if len(source) > 0 && body != "" {
		offset = countLines(string(source)) - countLines(body)
		if offset < 0 {
			offset = 0
		}
	}

	return &Input{
		Doc:        doc,
		Source:     source,
		body:       body,
		fences:     scanFences(body),
		lineOffset: offset,
	}
}

// FileLine converts a body-relative line into a file line.
func (in *Input) FileLine(bodyLine int) int {
	if bodyLine <= 0 {
		return 0
	}
	return bodyLine + in.lineOffset
}

// isFenced reports whether the body line falls inside a fenced code block,
// opening and closing fence lines included.
func (in *Input) isFenced(bodyLine int) bool {
	for _, block := range in.fences {
		last := block.Line + len(block.Content)
		if block.Closed {
			last++
		}
		if bodyLine >= block.Line && bodyLine <= last {
			return true
		}
	}
	return false
}

func (in *Input) path() string {
	if in.Doc == nil {
		return ""
	}
	return in.Doc.FilePath
}

// DocumentRule checks a single chapter file in isolation.
type DocumentRule interface {
	ID() string
	Check(in *Input) []interfaces.Diagnostic
}

// CorpusRule checks properties that only hold across the whole book, such as
// slug uniqueness and consecutive chapter numbering.
type CorpusRule interface {
	ID() string
	CheckCorpus(ins []*Input) []interfaces.Diagnostic
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
