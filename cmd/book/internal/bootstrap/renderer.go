package bootstrap

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-book/pkg/interfaces"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// newTemplateRenderer returns a renderer backed by html/template. When dir is
// empty the embedded default theme templates are used.
func newTemplateRenderer(dir string) (interfaces.TemplateRenderer, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("inspect template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template path %q is not a directory", dir)
		}
	}
	return &goTemplateRenderer{baseDir: dir}, nil
}

type goTemplateRenderer struct {
	baseDir string
	once    sync.Once
	tpl     *template.Template
	err     error
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
	}
}

func (r *goTemplateRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		if r.baseDir == "" {
			r.tpl, r.err = template.New("book-theme").Funcs(templateFuncs()).ParseFS(defaultTemplates, "templates/*.html")
			return
		}

		var files []string
		err := filepath.WalkDir(r.baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".html" && ext != ".tmpl" {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			r.err = err
			return
		}
		if len(files) == 0 {
			r.err = fmt.Errorf("no templates found in %s", r.baseDir)
			return
		}
		r.tpl, r.err = template.New("book-theme").Funcs(templateFuncs()).ParseFiles(files...)
	})
	return r.tpl, r.err
}

func (r *goTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *goTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}
	lookup := name
	if tpl.Lookup(lookup) == nil {
		lookup = name + ".html"
		if tpl.Lookup(lookup) == nil {
			return "", fmt.Errorf("template %q not found", name)
		}
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.ExecuteTemplate(writer, lookup, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func (r *goTemplateRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(templateFuncs()).Parse(content)
	if err != nil {
		return "", err
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.Execute(writer, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func (r *goTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *goTemplateRenderer) GlobalContext(any) error {
	return nil
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
