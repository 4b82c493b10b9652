// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// ErrSlugTaken is returned by Create when another post already uses the
// slug on the same publish day.
var ErrSlugTaken = errors.New("slug already used on this publish day")

// uniqueViolation is the Postgres SQLSTATE for a unique index conflict.
const uniqueViolation = "23505"

// PostStore handles all post-related database operations.
type PostStore struct {
	db  *sql.DB
	loc *time.Location
}

// NewPostStore creates a new PostStore with the given database connection.
// loc is the zone public post dates are expressed in; nil means UTC. It
// must not change once posts exist, since publish days are stored.
func NewPostStore(db *sql.DB, loc *time.Location) *PostStore {
	if loc == nil {
		loc = time.UTC
	}
	return &PostStore{db: db, loc: loc}
}

// PublishDay returns the calendar day of publish in loc as YYYY-MM-DD,
// the value stored in posts.publish_day.
func PublishDay(publish time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return publish.In(loc).Format(time.DateOnly)
}

// postSelect selects post columns joined with the author's display name.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.body, p.publish, p.status,
	       p.author_id, u.display_name, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// tagFilter restricts a query to posts carrying the tag in $1; a NULL $1
// disables the filter.
const tagFilter = `($1::bigint IS NULL OR EXISTS (
		SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $1))`

// scanPost scans a row produced by postSelect.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.Publish, &p.Status,
		&p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublished returns one page of published posts, newest first. A nil
// tagID lists posts of every tag.
func (s *PostStore) ListPublished(ctx context.Context, tagID *int64, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, postSelect+`
		WHERE p.status = 'published' AND `+tagFilter+`
		ORDER BY p.publish DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`, tagID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// CountPublished returns the number of published posts, optionally
// restricted to a tag.
func (s *PostStore) CountPublished(ctx context.Context, tagID *int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM posts p
		WHERE p.status = 'published' AND `+tagFilter,
		tagID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return count, nil
}

// FindPublishedBySlug retrieves the published post with the given slug
// whose publish time lies in [from, to). Returns nil if not found. When
// [from, to) is a day in the store's location at most one post matches.
func (s *PostStore) FindPublishedBySlug(ctx context.Context, postSlug string, from, to time.Time) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, postSelect+`
		WHERE p.slug = $1 AND p.status = 'published'
		  AND p.publish >= $2 AND p.publish < $3
		ORDER BY p.publish
		LIMIT 1
	`, postSlug, from, to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published post by slug: %w", err)
	}
	return p, nil
}

// FindPublishedByID retrieves a published post by its ID. Returns nil if
// the post does not exist or is a draft.
func (s *PostStore) FindPublishedByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, postSelect+`
		WHERE p.id = $1 AND p.status = 'published'
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID. An empty
// slug is derived from the title and a zero Publish means now.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	}
	if p.Publish.IsZero() {
		p.Publish = time.Now()
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, body, author_id, publish, publish_day, status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7)
		RETURNING id
	`, p.Title, p.Slug, p.Body, p.AuthorID, p.Publish, PublishDay(p.Publish, s.loc), p.Status).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, fmt.Errorf("create post %q: %w", p.Slug, ErrSlugTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	created, err := scanPost(s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("reload created post: %w", err)
	}
	return created, nil
}

// SetTags replaces the tag set of a post.
func (s *PostStore) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set post tags begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a post by ID. Its comments and tag links go with it.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
