package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-book/internal/commands/markdown"
	staticcmd "github.com/goliatone/go-book/internal/commands/static"
)

type importExecutor interface {
	Execute(ctx context.Context, msg markdowncmd.ImportDirectoryCommand) error
}

type buildExecutor interface {
	Execute(ctx context.Context, msg staticcmd.BuildSiteCommand) error
}

type cleanExecutor interface {
	Execute(ctx context.Context, msg staticcmd.CleanSiteCommand) error
}

type handlerSet struct {
	importDir importExecutor
	build     buildExecutor
	clean     cleanExecutor
}

type moduleOptions struct {
	bootstrap.Options
}

type moduleResources struct {
	handlers  handlerSet
	outputDir string
}

var moduleBuilder = buildResources

func buildResources(opts moduleOptions) (*moduleResources, error) {
	mod, err := bootstrap.BuildModule(opts.Options)
	if err != nil {
		return nil, err
	}
	if mod.Generator == nil {
		return nil, errors.New("generator service is not configured")
	}

	gates := staticcmd.FeatureGates{GeneratorEnabled: func() bool { return true }}
	resources := &moduleResources{
		handlers: handlerSet{
			build: staticcmd.NewBuildSiteHandler(mod.Generator, mod.Logger, gates),
			clean: staticcmd.NewCleanSiteHandler(mod.Generator, mod.Logger, gates),
		},
		outputDir: mod.Config.Generator.OutputDir,
	}
	if mod.Markdown != nil {
		resources.handlers.importDir = markdowncmd.NewImportDirectoryHandler(mod.Markdown, mod.Logger, markdowncmd.FeatureGates{})
	}
	return resources, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("book static: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: book-static <build|clean> [flags]")
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "clean":
		return runClean(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func runBuild(args []string) error {
	flags := flag.NewFlagSet("book-static-build", flag.ExitOnError)
	configPath := flags.String("config", "", "path to book.toml")
	sourceDir := flags.String("source", "", "override the configured chapter source dir")
	outputDir := flags.String("output", "", "override the configured output dir")
	baseURL := flags.String("base-url", "", "override the configured site base URL")
	templateDir := flags.String("templates", "", "directory holding chapter and index templates")
	parts := flags.String("part", "", "comma separated part codes to build")
	slugs := flags.String("slug", "", "comma separated chapter slugs to build")
	workers := flags.Int("workers", 0, "number of concurrent render workers")
	dryRun := flags.Bool("dry-run", false, "render without writing artifacts")
	publish := flags.Bool("publish", false, "treat all imported chapters as published")
	noImport := flags.Bool("no-import", false, "skip the markdown import step")
	if err := flags.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{Options: bootstrap.Options{
		ConfigPath:      *configPath,
		SourceDir:       *sourceDir,
		OutputDir:       *outputDir,
		BaseURL:         *baseURL,
		TemplateDir:     *templateDir,
		Workers:         *workers,
		EnableMarkdown:  !*noImport,
		EnableGenerator: true,
	}})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if !*noImport {
		if resources.handlers.importDir == nil {
			return errors.New("markdown import is not configured; rerun with -no-import")
		}
		importCmd := markdowncmd.ImportDirectoryCommand{
			Directory: ".",
			Publish:   *publish,
		}
		if err := resources.handlers.importDir.Execute(ctx, importCmd); err != nil {
			return fmt.Errorf("import chapters: %w", err)
		}
	}

	buildCmd := staticcmd.BuildSiteCommand{
		Parts:  bootstrap.SplitList(*parts),
		Slugs:  bootstrap.SplitList(*slugs),
		DryRun: *dryRun,
		ResultCallback: func(envelope staticcmd.ResultEnvelope) {
			result := envelope.Result
			if result == nil {
				return
			}
			log.Printf(
				"module=static operation=build summary pages=%d skipped=%d assets=%d duration=%s dry_run=%t",
				result.PagesBuilt,
				result.PagesSkipped,
				result.AssetsBuilt,
				result.Duration,
				result.DryRun,
			)
			for _, buildErr := range result.Errors {
				log.Printf("module=static operation=build error=%v", buildErr)
			}
		},
	}
	if err := resources.handlers.build.Execute(ctx, buildCmd); err != nil {
		return err
	}

	fmt.Printf("site written to %s\n", resources.outputDir)
	return nil
}

func runClean(args []string) error {
	flags := flag.NewFlagSet("book-static-clean", flag.ExitOnError)
	configPath := flags.String("config", "", "path to book.toml")
	outputDir := flags.String("output", "", "override the configured output dir")
	if err := flags.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{Options: bootstrap.Options{
		ConfigPath:      *configPath,
		OutputDir:       *outputDir,
		EnableGenerator: true,
	}})
	if err != nil {
		return err
	}

	if err := resources.handlers.clean.Execute(context.Background(), staticcmd.CleanSiteCommand{}); err != nil {
		return err
	}

	fmt.Printf("cleaned %s\n", resources.outputDir)
	return nil
}
