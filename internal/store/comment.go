package store

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/models"
)

// CommentStore handles comment persistence.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, name, email, body, active, created_at, updated_at`

// ListActiveByPost returns the active comments of a post, oldest first.
func (s *CommentStore) ListActiveByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE post_id = $1 AND active
		ORDER BY created_at, id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list active comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body,
			&c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a comment and returns it with its generated ID and
// timestamps.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, name, email, body, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		c.PostID, c.Name, c.Email, c.Body, c.Active,
	).Scan(
		&result.ID, &result.PostID, &result.Name, &result.Email, &result.Body,
		&result.Active, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}
