package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Renderer parses and executes templates, caching parsed templates by
// path. Safe for concurrent use.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with the built-in helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: template.FuncMap{
			"upper": strings.ToUpper,
			"join":  strings.Join,
		},
		cache: make(map[string]*template.Template),
	}
}

// RenderFS renders a template from an embedded filesystem.
func (r *Renderer) RenderFS(fsys embed.FS, path string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		raw, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}

		tmpl, err = template.New(path).Funcs(r.funcMap).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
