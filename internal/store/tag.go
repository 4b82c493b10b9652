// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// TagStore manages tags and their links to posts.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// FindBySlug retrieves a tag by its slug. Returns nil if not found.
func (s *TagStore) FindBySlug(ctx context.Context, tagSlug string) (*models.Tag, error) {
	var t models.Tag
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug FROM tags WHERE slug = $1
	`, tagSlug).Scan(&t.ID, &t.Name, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag by slug: %w", err)
	}
	return &t, nil
}

// ListForPosts returns the tags of each given post, keyed by post ID and
// sorted by name. Posts without tags are absent from the map.
func (s *TagStore) ListForPosts(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error) {
	result := make(map[int64][]models.Tag)
	if len(postIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name
	`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("list tags for posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		result[postID] = append(result[postID], t)
	}
	return result, rows.Err()
}

// Create inserts a tag, deriving the slug from the name when empty.
func (s *TagStore) Create(ctx context.Context, t *models.Tag) (*models.Tag, error) {
	if t.Slug == "" {
		t.Slug = slug.Generate(t.Name)
	}

	result := &models.Tag{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tags (name, slug) VALUES ($1, $2)
		RETURNING id, name, slug
	`, t.Name, t.Slug).Scan(&result.ID, &result.Name, &result.Slug)
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return result, nil
}

// Delete removes a tag by ID.
func (s *TagStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
