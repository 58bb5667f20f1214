// Package view renders the server-side HTML pages. Templates and
// static assets are embedded so the binary is self-contained.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer adapts html/template to Echo's Renderer interface. Pages
// are addressed by file name (e.g. "home.html").
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"fmtTime": func(ts time.Time) string {
			return ts.Format("2006-01-02 15:04:05 MST")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// StaticFS exposes the embedded static assets for the router.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embed layout is fixed at build time
	}
	return sub
}
