package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// ExtractSnippets walks the Markdown AST and captures every fenced code block
// as a snippet. Line numbers are 1-based and refer to the body after
// frontmatter removal; the line recorded is the opening fence line.
func ExtractSnippets(body []byte) ([]interfaces.Snippet, error) {
	if len(body) == 0 {
		return nil, nil
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	index := newLineIndex(body)

	var snippets []interfaces.Snippet

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		info := ""
		if block.Info != nil {
			info = strings.TrimSpace(string(block.Info.Segment.Value(body)))
		}

		language := ""
		if lang := block.Language(body); len(lang) > 0 {
			language = strings.ToLower(string(lang))
		}

		var source strings.Builder
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			source.Write(segment.Value(body))
		}

		line := 0
		switch {
		case block.Info != nil:
			line = index.lineAt(block.Info.Segment.Start)
		case lines.Len() > 0:
			// No info string, so anchor on the first content line and step
			// back to the opening fence.
			line = index.lineAt(lines.At(0).Start) - 1
		}

		snippets = append(snippets, interfaces.Snippet{
			Language: language,
			Info:     info,
			Source:   source.String(),
			Line:     line,
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk fenced blocks: %w", err)
	}

	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Line < snippets[j].Line
	})
	return snippets, nil
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	newlines []int
}

func newLineIndex(body []byte) *lineIndex {
	var offsets []int
	for i, b := range body {
		if b == '\n' {
			offsets = append(offsets, i)
		}
	}
	return &lineIndex{newlines: offsets}
}

func (l *lineIndex) lineAt(offset int) int {
	return sort.SearchInts(l.newlines, offset) + 1
}
