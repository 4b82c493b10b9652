// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers translates HTTP requests into blog service calls and
// renders the results.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/render"
)

// Blog groups the public blog handlers. Listing pages are served from the
// Valkey page cache when possible; pages with forms are always rendered.
type Blog struct {
	svc       *blog.Service
	renderer  *render.Renderer
	pageCache *cache.PageCache
	siteURL   string
}

// NewBlog creates the blog handler group. pageCache may be nil. siteURL,
// when set, is the absolute base of links in outgoing email; otherwise
// the request's scheme and host are used.
func NewBlog(svc *blog.Service, renderer *render.Renderer, pageCache *cache.PageCache, siteURL string) *Blog {
	return &Blog{
		svc:       svc,
		renderer:  renderer,
		pageCache: pageCache,
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

// PostList renders a page of published posts, optionally filtered by the
// {tag} URL parameter. The page is chosen by the "page" query parameter.
func (b *Blog) PostList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tagSlug := chi.URLParam(r, "tag")
	page := r.URL.Query().Get("page")

	key, cacheable := cache.ListKey(tagSlug, page)
	if cacheable {
		if cached, ok := b.pageCache.Get(ctx, key); ok {
			render.WriteHTML(w, http.StatusOK, cached)
			return
		}
	}

	res, err := b.svc.ListPosts(ctx, blog.ListQuery{TagSlug: tagSlug, Page: page})
	if err != nil {
		b.fail(w, r, "list posts", err)
		return
	}

	title := "Latest posts"
	if res.Tag != nil {
		title = "Posts tagged with " + res.Tag.Name
	}

	body, err := b.renderer.Render("list", &render.PageData{
		Title: title,
		Data: map[string]any{
			"Posts": res.Posts,
			"Page":  res.Page,
			"Tag":   res.Tag,
		},
	})
	if err != nil {
		b.fail(w, r, "render post list", err)
		return
	}

	if cacheable {
		b.pageCache.Set(ctx, key, body)
	}
	render.WriteHTML(w, http.StatusOK, body)
}

// PostDetail shows a post with its active comments (GET) and accepts a
// new comment (POST). Both render the same page; an invalid submission
// keeps the entered values and shows the field errors.
func (b *Blog) PostDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, ok := postKey(r)
	if !ok {
		b.renderer.NotFound(w, r)
		return
	}

	post, err := b.svc.FindPost(ctx, key)
	if err != nil {
		b.fail(w, r, "find post", err)
		return
	}

	var (
		form    forms.CommentInput
		errs    forms.Errors
		flashes []render.Flash
	)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		in, verrs := forms.ParseComment(r.PostForm)
		if verrs.Valid() {
			comment, err := b.svc.AddComment(ctx, post, in)
			if err != nil {
				b.fail(w, r, "add comment", err)
				return
			}
			slog.Info("comment added", "post_id", post.ID, "comment_id", comment.ID, "active", comment.Active)
			flashes = append(flashes, commentFlash(comment))
		} else {
			form, errs = in, verrs
		}
	}

	comments, err := b.svc.ActiveComments(ctx, post)
	if err != nil {
		b.fail(w, r, "list comments", err)
		return
	}

	b.renderer.Page(w, r, http.StatusOK, "detail", &render.PageData{
		Title:   post.Title,
		Flashes: flashes,
		Data: map[string]any{
			"Post":     post,
			"Comments": comments,
			"Form":     form,
			"Errors":   errs,
		},
	})
}

// PostShare shows the recommendation form (GET) and emails the post
// (POST). The page reports sent=true only after the mail was accepted.
func (b *Blog) PostShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		b.renderer.NotFound(w, r)
		return
	}

	post, err := b.svc.FindSharablePost(ctx, id)
	if err != nil {
		b.fail(w, r, "find sharable post", err)
		return
	}

	var (
		form forms.ShareInput
		errs forms.Errors
		sent bool
	)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		form, errs = forms.ParseShare(r.PostForm)
		if errs.Valid() {
			if err := b.svc.SharePost(ctx, post, form, b.absoluteURL(r, post.URL())); err != nil {
				b.fail(w, r, "share post", err)
				return
			}
			slog.Info("post shared", "post_id", post.ID)
			sent = true
		}
	}

	b.renderer.Page(w, r, http.StatusOK, "share", &render.PageData{
		Title: "Share " + post.Title,
		Data: map[string]any{
			"Post":   post,
			"Form":   form,
			"Errors": errs,
			"Sent":   sent,
		},
	})
}

// fail renders the 404 page for blog.ErrNotFound and logs anything else
// as a server error.
func (b *Blog) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, blog.ErrNotFound) {
		b.renderer.NotFound(w, r)
		return
	}
	slog.Error(op+" failed", "error", err, "method", r.Method, "path", r.URL.Path)
	b.renderer.ServerError(w, r)
}

// absoluteURL turns a site path into a link usable outside the site.
func (b *Blog) absoluteURL(r *http.Request, path string) string {
	if b.siteURL != "" {
		return b.siteURL + path
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// postKey reads the date and slug URL parameters of a post detail route.
func postKey(r *http.Request) (blog.PostKey, bool) {
	var key blog.PostKey
	var err error
	if key.Year, err = strconv.Atoi(chi.URLParam(r, "year")); err != nil {
		return key, false
	}
	if key.Month, err = strconv.Atoi(chi.URLParam(r, "month")); err != nil {
		return key, false
	}
	if key.Day, err = strconv.Atoi(chi.URLParam(r, "day")); err != nil {
		return key, false
	}
	key.Slug = chi.URLParam(r, "slug")
	return key, key.Slug != ""
}

func commentFlash(c *models.Comment) render.Flash {
	if c.Active {
		return render.Flash{Type: "success", Message: "Your comment has been added."}
	}
	return render.Flash{Type: "info", Message: "Your comment has been received and will appear once approved."}
}

// NotFound renders the 404 page for unmatched routes.
func (b *Blog) NotFound(w http.ResponseWriter, r *http.Request) {
	b.renderer.NotFound(w, r)
}
