// Package lint validates the mechanical structure of chapter files: fence
// closure, language tagging and plausibility, heading numbering, frontmatter
// completeness, slug uniqueness, and snippet pairing across language tracks.
package lint
