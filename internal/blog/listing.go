package blog

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/paginate"
)

// ListQuery selects a listing page. Both fields are raw request values.
type ListQuery struct {
	TagSlug string // empty lists every tag
	Page    string // resolved by paginate.Resolve
}

// ListResult is one listing page.
type ListResult struct {
	Posts []models.Post
	Page  paginate.Page
	Tag   *models.Tag // nil when not filtering
}

// ListPosts returns a page of published posts, newest first. An unknown
// tag is ErrNotFound; an unusable page number never is.
func (s *Service) ListPosts(ctx context.Context, q ListQuery) (*ListResult, error) {
	result := &ListResult{}

	var tagID *int64
	if tagSlug := strings.TrimSpace(q.TagSlug); tagSlug != "" {
		tag, err := s.tags.FindBySlug(ctx, tagSlug)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		if tag == nil {
			return nil, ErrNotFound
		}
		result.Tag = tag
		tagID = &tag.ID
	}

	total, err := s.posts.CountPublished(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	result.Page = paginate.Resolve(q.Page, total, PageSize)

	if total == 0 {
		return result, nil
	}

	posts, err := s.posts.ListPublished(ctx, tagID, result.Page.Limit(), result.Page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if err := s.attachTags(ctx, posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for i := range posts {
		s.localize(&posts[i])
	}
	result.Posts = posts
	return result, nil
}

// attachTags fills the Tags field of each post with one batched query.
func (s *Service) attachTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	byPost, err := s.tags.ListForPosts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Tags = byPost[posts[i].ID]
	}
	return nil
}
