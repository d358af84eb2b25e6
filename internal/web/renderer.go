package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sem/quill/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the data envelope every view receives.
type Page struct {
	Title   string
	Flashes []string
	User    *domain.User // current user, nil when anonymous
	Data    any
}

// Renderer renders the embedded HTML views. Each page template is parsed
// together with the base layout.
type Renderer struct {
	templates map[string]*template.Template
}

var pages = []string{
	"home", "register", "login", "dashboard", "users",
	"posts", "post", "post_form", "search", "admin",
	"error404", "error500",
}

func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes the named page. The template executes into a buffer first
// so a rendering failure never leaves a half-written body.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
