package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-book/cmd/book/internal/bootstrap"
	"github.com/goliatone/go-book/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		configPath = flag.String("config", "", "path to book.toml")
		sourceDir  = flag.String("source", "", "override the configured chapter source dir")
		filePath   = flag.String("file", "", "chapter file to preview, relative to the source dir")
		renderHTML = flag.Bool("render-html", true, "render the chapter body into HTML")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath:     *configPath,
		SourceDir:      *sourceDir,
		EnableMarkdown: true,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	if module == nil || module.Markdown == nil {
		log.Fatalf("markdown service not configured; ensure the markdown feature is enabled")
	}

	ctx := context.Background()

	doc, err := module.Markdown.Load(ctx, *filePath, interfaces.LoadOptions{})
	if err != nil {
		log.Fatalf("load chapter: %v", err)
	}

	if *renderHTML && len(doc.BodyHTML) == 0 {
		if _, err := module.Markdown.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
			log.Fatalf("render chapter: %v", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nPart: %s\nChecksum: %x\n\n", doc.FilePath, doc.Part, doc.Checksum)

	if doc.FrontMatter.Raw != nil {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if len(doc.Snippets) > 0 {
		fmt.Fprintf(os.Stdout, "Snippets:\n")
		for _, snippet := range doc.Snippets {
			fmt.Fprintf(os.Stdout, "  line %d [%s]\n", snippet.Line, snippet.Language)
		}
		fmt.Fprintln(os.Stdout)
	}

	if *renderHTML {
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", string(doc.BodyHTML))
	} else {
		fmt.Fprintf(os.Stdout, "Markdown Body:\n%s\n", string(doc.Body))
	}
}
