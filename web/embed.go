// Package web provides the embedded static assets served under /static/.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// StaticFS returns the static asset tree rooted at the static directory,
// so "style.css" resolves to web/static/style.css.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path, which "static" is not.
		panic(err)
	}
	return sub
}
