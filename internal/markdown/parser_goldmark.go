package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark
// engine. The parser holds no mutable state, so a single instance can be
// shared across chapter renders without locking.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
}

// NewGoldmarkParser constructs a parser with the supplied defaults. With an
// empty option set the engine enables the GFM extensions, disables hard
// wraps, and allows raw HTML, which matches how book chapters are authored.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
	}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown from the supplied parse
// options. Unsupported extension names are ignored rather than rejected.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// Both SafeMode and Sanitize suppress raw HTML passthrough.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
