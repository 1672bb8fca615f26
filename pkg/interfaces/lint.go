package interfaces

import "context"

// Severity ranks lint diagnostics.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a single lint finding anchored to a file position. Line is
// 1-based; a zero Line means the finding applies to the whole file.
type Diagnostic struct {
	Rule     string
	Severity Severity
	File     string
	Line     int
	Message  string
}

// LintReport aggregates the diagnostics produced by one lint run. Diagnostics
// are ordered by file, line, then rule ID so output stays stable across runs.
type LintReport struct {
	Diagnostics []Diagnostic
	Errors      int
	Warnings    int
	Files       int
}

// HasErrors reports whether any diagnostic carries error severity.
func (r *LintReport) HasErrors() bool {
	return r != nil && r.Errors > 0
}

// LintService validates the structure of a set of chapter documents.
type LintService interface {
	LintDocument(ctx context.Context, doc *Document, source []byte) (*LintReport, error)
	LintDirectory(ctx context.Context, dir string) (*LintReport, error)
}
