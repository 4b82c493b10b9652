// Package router sets up the HTTP routes and middleware chain for the blog.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// maxFormBytes bounds request bodies; the largest form is a 5000-character
// comment.
const maxFormBytes = 64 << 10

// Options configures the router.
type Options struct {
	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool

	// FormLimiter rate-limits comment and share submissions. Nil disables
	// rate limiting.
	FormLimiter *middleware.RateLimiter

	// Static serves /static/ when set.
	Static fs.FS
}

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(blog *handlers.Blog, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(chimw.RequestSize(maxFormBytes))

	// Health check, no CSRF.
	r.Get("/health", healthHandler)

	if opts.Static != nil {
		static := http.StripPrefix("/static/", http.FileServerFS(opts.Static))
		r.Handle("/static/*", chimw.SetHeader("Cache-Control", "public, max-age=3600")(static))
	}

	limit := func(h http.HandlerFunc) http.Handler {
		if opts.FormLimiter == nil {
			return h
		}
		return opts.FormLimiter.Middleware(h)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", blog.PostList)
		r.Get("/tag/{tag}", blog.PostList)

		r.Get("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}", blog.PostDetail)
		r.Method(http.MethodPost, "/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}", limit(blog.PostDetail))

		r.Get("/{id:[0-9]+}/share", blog.PostShare)
		r.Method(http.MethodPost, "/{id:[0-9]+}/share", limit(blog.PostShare))
	})

	r.NotFound(blog.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
