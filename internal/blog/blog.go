// Package blog implements the public blog operations: the paginated post
// listing, post lookup with comments, comment submission and post
// recommendation by email. It is independent of HTTP; handlers translate
// requests into calls on Service.
package blog

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/mailer"
	"inkwell/internal/models"
	"inkwell/internal/moderation"
)

// PageSize is the number of posts on one listing page.
const PageSize = 3

// ErrNotFound is returned when a post or tag does not exist or is not
// publicly visible.
var ErrNotFound = errors.New("not found")

// PostRepository reads posts. Missing rows are reported as nil, nil.
type PostRepository interface {
	ListPublished(ctx context.Context, tagID *int64, limit, offset int) ([]models.Post, error)
	CountPublished(ctx context.Context, tagID *int64) (int, error)
	FindPublishedBySlug(ctx context.Context, slug string, from, to time.Time) (*models.Post, error)
	FindPublishedByID(ctx context.Context, id int64) (*models.Post, error)
}

// TagRepository reads tags. Missing rows are reported as nil, nil.
type TagRepository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Tag, error)
	ListForPosts(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error)
}

// CommentRepository reads and writes comments.
type CommentRepository interface {
	ListActiveByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
}

// Options configures a Service.
type Options struct {
	// MailFrom is the sender address of recommendation emails.
	MailFrom string

	// Location is the time zone in which publish dates are interpreted
	// for post URLs. Defaults to UTC.
	Location *time.Location

	// RequireApproval stores every new comment inactive.
	RequireApproval bool

	// Moderator, when set, screens new comments; flagged ones are stored
	// inactive.
	Moderator moderation.Checker
}

// Service holds the blog's dependencies.
type Service struct {
	posts    PostRepository
	tags     TagRepository
	comments CommentRepository
	mail     mailer.Sender
	opts     Options
}

// NewService creates a Service.
func NewService(posts PostRepository, tags TagRepository, comments CommentRepository, mail mailer.Sender, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		posts:    posts,
		tags:     tags,
		comments: comments,
		mail:     mail,
		opts:     opts,
	}
}

// Location returns the time zone used for publish dates.
func (s *Service) Location() *time.Location {
	return s.opts.Location
}

// localize moves publish times into the configured location so that
// Post.URL yields the dates readers see.
func (s *Service) localize(p *models.Post) {
	p.Publish = p.Publish.In(s.opts.Location)
}
