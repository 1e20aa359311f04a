// Package render is the filesystem-backed template source pages are
// rendered through. Handlers never render directly; they attach a
// Template naming a file under the templates root, and the render
// interceptor produces the bytes once every interceptor has had a
// chance to add to the context.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

// Context is the per-request key/value data a template is rendered
// against. It exists for one request and is consumed exactly once.
type Context map[string]any

// Template names a file under the templates root together with the
// context accumulated for it.
type Template struct {
	Name    string
	Context Context
}

// NewTemplate attaches an empty context when ctx is nil.
func NewTemplate(name string, ctx Context) *Template {
	if ctx == nil {
		ctx = Context{}
	}
	return &Template{Name: name, Context: ctx}
}

// Engine loads every template under root at startup. Templates are
// named by their slash-separated path relative to root, so nested
// includes like {{template "partials/header.html" .}} resolve.
type Engine struct {
	root *template.Template
}

func NewEngine(dir string) (*Engine, error) {
	root := template.New("")

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		_, err = root.New(filepath.ToSlash(rel)).Parse(string(b))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render: load templates from %s: %w", dir, err)
	}

	return &Engine{root: root}, nil
}

// Render executes the named template against ctx. Output is buffered so
// a mid-render failure never emits a partial page.
func (e *Engine) Render(name string, ctx Context) ([]byte, error) {
	tmpl := e.root.Lookup(name)
	if tmpl == nil {
		return nil, fmt.Errorf("render: no template named %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("render: execute %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
