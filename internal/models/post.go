// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a blog entry. Its public identity is the slug together with the
// calendar day of Publish; the numeric ID is used by the share form.
type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Body       string     `json:"body"` // Markdown
	Publish    time.Time  `json:"publish"`
	Status     PostStatus `json:"status"`
	AuthorID   uuid.UUID  `json:"author_id"`
	AuthorName string     `json:"author_name"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Populated by the blog service, not stored on the posts row.
	Tags []Tag `json:"tags,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// URL returns the public path of the post, e.g. "/2024/1/5/hello-world".
// The date parts come from Publish in whatever location it carries.
func (p *Post) URL() string {
	return fmt.Sprintf("/%d/%d/%d/%s", p.Publish.Year(), int(p.Publish.Month()), p.Publish.Day(), p.Slug)
}

// ShareURL returns the path of the recommendation form for this post.
func (p *Post) ShareURL() string {
	return fmt.Sprintf("/%d/share", p.ID)
}
