package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inkwell/internal/forms"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// PostKey is the public identity of a post: its publish date and slug.
type PostKey struct {
	Year  int
	Month int
	Day   int
	Slug  string
}

// FindPost resolves the published post identified by key. The date is a
// calendar day in the service's location; dates that do not exist (month
// 13, February 30) and malformed slugs are ErrNotFound rather than being
// normalized.
func (s *Service) FindPost(ctx context.Context, key PostKey) (*models.Post, error) {
	if key.Month < 1 || key.Month > 12 || key.Day < 1 || !slug.Valid(key.Slug) {
		return nil, ErrNotFound
	}

	from := time.Date(key.Year, time.Month(key.Month), key.Day, 0, 0, 0, 0, s.opts.Location)
	if from.Year() != key.Year || int(from.Month()) != key.Month || from.Day() != key.Day {
		return nil, ErrNotFound
	}
	to := from.AddDate(0, 0, 1)

	post, err := s.posts.FindPublishedBySlug(ctx, key.Slug, from, to)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.withTags(ctx, post)
}

// ActiveComments returns the comments of post that are shown publicly,
// oldest first.
func (s *Service) ActiveComments(ctx context.Context, post *models.Post) ([]models.Comment, error) {
	comments, err := s.comments.ListActiveByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("active comments: %w", err)
	}
	return comments, nil
}

// AddComment stores a validated comment on post. The comment is active
// unless approval is required or the moderator flags it; a moderator
// failure leaves it active.
func (s *Service) AddComment(ctx context.Context, post *models.Post, in forms.CommentInput) (*models.Comment, error) {
	c := &models.Comment{
		PostID: post.ID,
		Name:   in.Name,
		Email:  in.Email,
		Body:   in.Body,
		Active: !s.opts.RequireApproval,
	}

	if c.Active && s.opts.Moderator != nil {
		res, err := s.opts.Moderator.CheckSafety(ctx, in.Body)
		switch {
		case err != nil:
			slog.Warn("comment moderation failed, publishing unchecked",
				"post_id", post.ID, "error", err)
		case !res.Safe:
			slog.Info("comment held for review",
				"post_id", post.ID, "categories", strings.Join(res.Categories, ", "))
			c.Active = false
		}
	}

	created, err := s.comments.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return created, nil
}

// withTags loads the tags of a single post and localizes it.
func (s *Service) withTags(ctx context.Context, post *models.Post) (*models.Post, error) {
	byPost, err := s.tags.ListForPosts(ctx, []int64{post.ID})
	if err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	post.Tags = byPost[post.ID]
	s.localize(post)
	return post, nil
}
