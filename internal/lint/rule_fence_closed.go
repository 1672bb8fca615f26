package lint

import (
	"fmt"

	"github.com/goliatone/go-book/pkg/interfaces"
)

// RuleFenceClosed is the rule ID for the unclosed fence check.
const RuleFenceClosed = "fence-closed"

// fenceClosedRule reports every fence still open at end of file, pointing at
// the opening line.
type fenceClosedRule struct {
	severity interfaces.Severity
}

func newFenceClosedRule(severity interfaces.Severity) *fenceClosedRule {
	return &fenceClosedRule{severity: severity}
}

func (r *fenceClosedRule) ID() string { return RuleFenceClosed }

func (r *fenceClosedRule) Check(in *Input) []interfaces.Diagnostic {
	var out []interfaces.Diagnostic
	for _, block := range in.fences {
		if block.Closed {
			continue
		}
		marker := string([]byte{block.Marker, block.Marker, block.Marker})
		out = append(out, interfaces.Diagnostic{
			Rule:     r.ID(),
			Severity: r.severity,
			File:     in.path(),
			Line:     in.FileLine(block.Line),
			Message:  fmt.Sprintf("code fence opened with %q is never closed", marker),
		})
	}
	return out
}
