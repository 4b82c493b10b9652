// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public blog
// pages. Templates are embedded in the binary and each page is paired with
// the base layout and the shared partials.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/forms"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
)

//go:embed templates/blog/*.html
var blogFS embed.FS

// layoutFiles are parsed together with every page template.
var layoutFiles = map[string]bool{
	"base.html":     true,
	"partials.html": true,
}

// PageData holds all data passed to blog templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution for blog pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all blog templates from the embedded
// filesystem. siteName appears in page titles, header and footer.
func New(siteName string) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"siteName": func() string { return siteName },
			"year":     func() int { return time.Now().Year() },
			"markdown": markdown.Render,
			"excerpt":  markdown.Excerpt,
			"date": func(t time.Time) string {
				return t.Format("January 2, 2006")
			},
			"datetime": func(t time.Time) string {
				return t.Format("January 2, 2006 15:04")
			},
			"add": func(a, b int) int { return a + b },
			// fieldErrors returns the messages for one form field; errs may
			// be nil on pages rendered without a submission.
			"fieldErrors": func(errs any, name string) []string {
				e, _ := errs.(forms.Errors)
				return e[name]
			},
		},
	}

	entries, err := blogFS.ReadDir("templates/blog")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || layoutFiles[name] || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			blogFS, "templates/blog/base.html", "templates/blog/partials.html", "templates/blog/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Render executes the named page into a byte slice. The CSRF token is
// taken from data as given, so pages rendered here for caching carry none.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a full blog page with the given status code. Output is
// buffered so a template error still yields a clean 500 response.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	body, err := rn.Render(name, data)
	if err != nil {
		slog.Error("render page", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	WriteHTML(w, status, body)
}

// NotFound renders the 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rn.Page(w, r, http.StatusNotFound, "not_found", &PageData{Title: "Page not found"})
}

// ServerError renders the 500 page. The caller logs the cause.
func (rn *Renderer) ServerError(w http.ResponseWriter, r *http.Request) {
	rn.Page(w, r, http.StatusInternalServerError, "error", &PageData{Title: "Server error"})
}

// WriteHTML writes pre-rendered HTML with the given status.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
