package lint

import (
	"context"
	"errors"
	"sort"

	"github.com/goliatone/go-book/internal/logging"
	"github.com/goliatone/go-book/internal/markdown"
	"github.com/goliatone/go-book/pkg/interfaces"
)

// ErrLoaderRequired is returned by LintDirectory when the service was wired
// without a document loader.
var ErrLoaderRequired = errors.New("lint service: document loader is required")

// DirectoryLoader supplies chapter documents with their raw sources. It is
// satisfied by *markdown.Loader.
type DirectoryLoader interface {
	LoadDirectory(ctx context.Context, dir string, opts markdown.LoadParams) ([]*markdown.DocumentResult, error)
}

// Service implements interfaces.LintService over a configurable rule set.
type Service struct {
	cfg         Config
	loader      DirectoryLoader
	logger      interfaces.Logger
	docRules    []DocumentRule
	corpusRules []CorpusRule
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithLogger injects the logger used for lint run summaries.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a lint service with the rules enabled by cfg.
func NewService(cfg Config, loader DirectoryLoader, opts ...ServiceOption) *Service {
	svc := &Service{
		cfg:    cfg,
		loader: loader,
		logger: logging.NoOp(),
	}
	svc.buildRules()
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) buildRules() {
	cfg := s.cfg

	add := func(id string, fallback interfaces.Severity, make func(interfaces.Severity) any) {
		if !cfg.ruleEnabled(id) {
			return
		}
		rule := make(cfg.ruleSeverity(id, fallback))
		if doc, ok := rule.(DocumentRule); ok {
			s.docRules = append(s.docRules, doc)
		}
		if corpus, ok := rule.(CorpusRule); ok {
			s.corpusRules = append(s.corpusRules, corpus)
		}
	}

	add(RuleFenceClosed, interfaces.SeverityError, func(sev interfaces.Severity) any {
		return newFenceClosedRule(sev)
	})
	add(RuleFenceLanguage, interfaces.SeverityError, func(sev interfaces.Severity) any {
		return newFenceLanguageRule(sev, cfg.AllowedTags)
	})
	add(RuleHeadingNumbering, interfaces.SeverityError, func(sev interfaces.Severity) any {
		return newHeadingNumberingRule(sev)
	})
	add(RuleFrontMatterRequired, interfaces.SeverityError, func(sev interfaces.Severity) any {
		return newFrontMatterRule(sev)
	})
	add(RuleSlugUnique, interfaces.SeverityError, func(sev interfaces.Severity) any {
		return newSlugUniqueRule(sev)
	})
	add(RuleSnippetPairing, interfaces.SeverityWarning, func(sev interfaces.Severity) any {
		return newSnippetPairingRule(sev, cfg.Languages)
	})
}

// LintDocument runs the per-file rules against a single chapter document.
func (s *Service) LintDocument(ctx context.Context, doc *interfaces.Document, source []byte) (*interfaces.LintReport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if doc == nil {
		return nil, errors.New("lint service: document is nil")
	}

	in := newInput(doc, source)
	var diagnostics []interfaces.Diagnostic
	for _, rule := range s.docRules {
		diagnostics = append(diagnostics, rule.Check(in)...)
	}
	return buildReport(diagnostics, 1), nil
}

// LintDirectory loads every chapter file under dir and runs both the per-file
// and the whole-book rules.
func (s *Service) LintDirectory(ctx context.Context, dir string) (*interfaces.LintReport, error) {
	if s.loader == nil {
		return nil, ErrLoaderRequired
	}

	results, err := s.loader.LoadDirectory(ctx, dir, markdown.LoadParams{})
	if err != nil {
		return nil, err
	}

	inputs := make([]*Input, 0, len(results))
	for _, result := range results {
		inputs = append(inputs, newInput(result.Document, result.Source))
	}

	var diagnostics []interfaces.Diagnostic
	for _, in := range inputs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		for _, rule := range s.docRules {
			diagnostics = append(diagnostics, rule.Check(in)...)
		}
	}
	for _, rule := range s.corpusRules {
		diagnostics = append(diagnostics, rule.CheckCorpus(inputs)...)
	}

	report := buildReport(diagnostics, len(inputs))
	s.logger.Info("lint.run",
		"dir", dir,
		"files", report.Files,
		"errors", report.Errors,
		"warnings", report.Warnings,
	)
	return report, nil
}

// buildReport sorts diagnostics by file, line, then rule and tallies
// severities so output stays stable across runs.
func buildReport(diagnostics []interfaces.Diagnostic, files int) *interfaces.LintReport {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})

	report := &interfaces.LintReport{
		Diagnostics: diagnostics,
		Files:       files,
	}
	for _, diagnostic := range diagnostics {
		switch diagnostic.Severity {
		case interfaces.SeverityError:
			report.Errors++
		default:
			report.Warnings++
		}
	}
	return report
}
