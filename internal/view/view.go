// Package view is the thin adapter in front of html/template. Handlers
// pick a template name and hand over data; everything else about
// presentation lives in the embedded templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
	logger    *zap.Logger
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"printfloat": func(f float64) string { return fmt.Sprintf("%g", f) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, logger: logger}, nil
}

// Render writes the status code and the named template. A template
// failure at this point can only be reported, the status is already on
// the wire.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

// RenderError is the generic error view shorthand.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message, details string) {
	r.Render(w, status, "error.html", map[string]string{
		"Message":  message,
		"Details":  details,
		"BackLink": "/",
	})
}
