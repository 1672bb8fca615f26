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
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("book sync: %v", err)
	}
}

func runSync(args []string) error {
	flags := flag.NewFlagSet("book-sync", flag.ExitOnError)
	configPath := flags.String("config", "", "path to book.toml")
	directory := flags.String("directory", ".", "directory to sync, relative to the configured source dir")
	sourceDir := flags.String("source", "", "override the configured chapter source dir")
	author := flags.String("author", "", "author recorded on synced chapters")
	publish := flags.Bool("publish", false, "force synced chapters to published status")
	skipDraft := flags.Bool("skip-draft", false, "skip chapters marked as drafts")
	dryRun := flags.Bool("dry-run", false, "report changes without persisting")
	deleteOrphaned := flags.Bool("delete-orphaned", false, "remove catalog chapters with no backing file")
	updateExisting := flags.Bool("update-existing", true, "update chapters whose source changed")
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

	handler := markdowncmd.NewSyncDirectoryHandler(mod.Markdown, mod.Logger, markdowncmd.FeatureGates{})
	cmd := markdowncmd.SyncDirectoryCommand{
		Directory:      *directory,
		AuthorID:       *author,
		Publish:        *publish,
		SkipDraft:      *skipDraft,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
		UpdateExisting: *updateExisting,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return err
	}

	fmt.Printf("sync completed for %s\n", *directory)
	return nil
}
