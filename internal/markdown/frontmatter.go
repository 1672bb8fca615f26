package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// part code, raw content, and modification time. Fenced snippets are extracted
// eagerly so downstream consumers never reparse the body; BodyHTML stays empty
// until a render is requested.
func BuildDocument(path string, part string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	snippets, err := ExtractSnippets(body)
	if err != nil {
		return nil, fmt.Errorf("extract snippets %s: %w", path, err)
	}

	if part == "" {
		part = meta.Part
	}

	return &interfaces.Document{
		FilePath:     path,
		Part:         part,
		FrontMatter:  meta,
		Body:         body,
		Snippets:     snippets,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title     string         `yaml:"title"`
	Slug      string         `yaml:"slug"`
	Summary   string         `yaml:"summary"`
	Status    string         `yaml:"status"`
	Chapter   int            `yaml:"chapter"`
	Part      string         `yaml:"part"`
	Weight    int            `yaml:"weight"`
	Tags      []string       `yaml:"tags"`
	Languages []string       `yaml:"languages"`
	Author    string         `yaml:"author"`
	Date      time.Time      `yaml:"date"`
	Draft     bool           `yaml:"draft"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+10)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if env.Status != "" {
		raw["status"] = env.Status
	}
	if env.Chapter != 0 {
		raw["chapter"] = env.Chapter
	}
	if env.Part != "" {
		raw["part"] = env.Part
	}
	if env.Weight != 0 {
		raw["weight"] = env.Weight
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if len(env.Languages) > 0 {
		raw["languages"] = append([]string(nil), env.Languages...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Title:     env.Title,
		Slug:      env.Slug,
		Summary:   env.Summary,
		Status:    env.Status,
		Chapter:   env.Chapter,
		Part:      env.Part,
		Weight:    env.Weight,
		Tags:      append([]string(nil), env.Tags...),
		Languages: append([]string(nil), env.Languages...),
		Author:    env.Author,
		Date:      env.Date,
		Draft:     env.Draft,
		Custom:    cloneMap(env.Custom),
		Raw:       raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
