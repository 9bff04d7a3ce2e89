package api

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Renderer adapts html/template to echo's Renderer interface for the
// server-rendered landing page.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template matching the glob (e.g.
// "web/templates/*.html"). Templates are addressed by file name.
func NewRenderer(glob string) (*Renderer, error) {
	t, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
