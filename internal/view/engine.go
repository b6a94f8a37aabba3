package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Engine renders pages, each page template is parsed together with the shared layout.
type Engine struct {
	pages map[string]*template.Template
}

func New() (*Engine, error) {
	funcs := template.FuncMap{
		"money": func(m domain.Money) string {
			return m.String()
		},
		"subtotal": func(l domain.OrderLine) domain.Money {
			return l.Subtotal()
		},
	}

	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))

	for _, name := range names {
		if name == layoutFile {
			continue
		}

		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(files, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("template.ParseFS[%s]: %w", name, err)
		}

		pages[strings.TrimSuffix(path.Base(name), ".html")] = tmpl
	}

	return &Engine{pages: pages}, nil
}

// Render executes page into w. Output is buffered, w receives nothing when execution fails.
func (e *Engine) Render(w io.Writer, page string, data any) error {
	tmpl, ok := e.pages[page]
	if !ok {
		return fmt.Errorf("page[%s] is not defined", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("tmpl.Execute[%s]: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
