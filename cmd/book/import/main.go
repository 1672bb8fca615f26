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
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("book import: %v", err)
	}
}

func runImport(args []string) error {
	flags := flag.NewFlagSet("book-import", flag.ExitOnError)
	configPath := flags.String("config", "", "path to book.toml")
	directory := flags.String("directory", ".", "directory to import, relative to the configured source dir")
	sourceDir := flags.String("source", "", "override the configured chapter source dir")
	author := flags.String("author", "", "author recorded on imported chapters")
	publish := flags.Bool("publish", false, "force imported chapters to published status")
	skipDraft := flags.Bool("skip-draft", false, "skip chapters marked as drafts")
	dryRun := flags.Bool("dry-run", false, "parse and validate without persisting")
	if err := flags.Parse(args); err != nil {
		return err
	}

	mod, err := moduleBuilder(bootstrap.Options{
		ConfigPath:     *configPath,
		SourceDir:      *sourceDir,
		EnableMarkdown: true,
	})
	if err != nil {
		return err
	}
	if mod.Markdown == nil {
		return errors.New("markdown service is not configured")
	}

	handler := markdowncmd.NewImportDirectoryHandler(mod.Markdown, mod.Logger, markdowncmd.FeatureGates{})
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory: *directory,
		AuthorID:  *author,
		Publish:   *publish,
		SkipDraft: *skipDraft,
		DryRun:    *dryRun,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return err
	}

	fmt.Printf("import completed for %s\n", *directory)
	return nil
}
