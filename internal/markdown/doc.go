// Package markdown implements the chapter ingestion workflows: frontmatter
// extraction, Goldmark rendering, fenced snippet capture, and the importer
// that keeps the chapter catalog in step with files on disk.
package markdown
