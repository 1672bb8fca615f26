package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	lintcmd "github.com/goliatone/go-book/internal/commands/lint"
	"github.com/goliatone/go-book/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		log.Fatalf("book lint: %v", err)
	}
}

func runLint(args []string) error {
	flags := flag.NewFlagSet("book-lint", flag.ExitOnError)
	configPath := flags.String("config", "", "path to book.toml")
	directory := flags.String("directory", ".", "directory to lint, relative to the configured source dir")
	sourceDir := flags.String("source", "", "override the configured chapter source dir")
	lintConfig := flags.String("rules", "", "path to a lint rules YAML file")
	failOnWarnings := flags.Bool("fail-on-warnings", false, "treat warnings as failures")
	if err := flags.Parse(args); err != nil {
		return err
	}

	mod, err := moduleBuilder(bootstrap.Options{
		ConfigPath:     *configPath,
		SourceDir:      *sourceDir,
		LintConfig:     *lintConfig,
		EnableMarkdown: true,
		EnableLint:     true,
	})
	if err != nil {
		return err
	}
	if mod.Lint == nil {
		return errors.New("lint service is not configured")
	}

	var report *interfaces.LintReport
	handler := lintcmd.NewLintBookHandler(mod.Lint, mod.Logger, lintcmd.FeatureGates{})
	cmd := lintcmd.LintBookCommand{
		Directory:      *directory,
		FailOnWarnings: *failOnWarnings,
		ResultCallback: func(envelope lintcmd.ResultEnvelope) {
			report = envelope.Report
		},
	}

	execErr := handler.Execute(context.Background(), cmd)
	if report != nil {
		printReport(report)
	}
	return execErr
}

func printReport(report *interfaces.LintReport) {
	for _, diag := range report.Diagnostics {
		fmt.Printf("%s:%d [%s] %s: %s\n", diag.File, diag.Line, diag.Severity, diag.Rule, diag.Message)
	}
	fmt.Printf("%d files checked, %d errors, %d warnings\n", report.Files, report.Errors, report.Warnings)
}
