// Package blogtest provides in-memory repositories and a recording mail
// sender for exercising the blog service without Postgres or SMTP.
package blogtest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/mailer"
	"inkwell/internal/models"
)

// Posts is an in-memory post repository.
type Posts struct {
	mu    sync.Mutex
	posts []models.Post
	tags  map[int64][]int64 // post id -> tag ids
	next  int64

	// Err, when set, is returned by every method.
	Err error
}

// NewPosts creates an empty repository.
func NewPosts() *Posts {
	return &Posts{tags: make(map[int64][]int64), next: 1}
}

// Add stores p, assigning an ID when it has none, and links it to tags.
func (r *Posts) Add(p models.Post, tags ...models.Tag) models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.next
	}
	if p.ID >= r.next {
		r.next = p.ID + 1
	}
	if p.Status == "" {
		p.Status = models.PostStatusPublished
	}
	p.Tags = nil
	r.posts = append(r.posts, p)
	for _, t := range tags {
		r.tags[p.ID] = append(r.tags[p.ID], t.ID)
	}
	return p
}

func (r *Posts) published(tagID *int64) []models.Post {
	var out []models.Post
	for _, p := range r.posts {
		if !p.IsPublished() {
			continue
		}
		if tagID != nil && !contains(r.tags[p.ID], *tagID) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Publish.Equal(out[j].Publish) {
			return out[i].Publish.After(out[j].Publish)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *Posts) ListPublished(_ context.Context, tagID *int64, limit, offset int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := r.published(tagID)
	if offset >= len(all) {
		return []models.Post{}, nil
	}
	end := min(offset+limit, len(all))
	return append([]models.Post(nil), all[offset:end]...), nil
}

func (r *Posts) CountPublished(_ context.Context, tagID *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.published(tagID)), nil
}

func (r *Posts) FindPublishedBySlug(_ context.Context, slug string, from, to time.Time) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.posts {
		if p.IsPublished() && p.Slug == slug && !p.Publish.Before(from) && p.Publish.Before(to) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Posts) FindPublishedByID(_ context.Context, id int64) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.posts {
		if p.ID == id && p.IsPublished() {
			return &p, nil
		}
	}
	return nil, nil
}

// Tags is an in-memory tag repository that reads post links from Posts.
type Tags struct {
	mu    sync.Mutex
	tags  []models.Tag
	posts *Posts
	next  int64

	Err error
}

// NewTags creates a tag repository backed by posts for tag links.
func NewTags(posts *Posts) *Tags {
	return &Tags{posts: posts, next: 1}
}

// Add stores t, assigning an ID when it has none.
func (r *Tags) Add(t models.Tag) models.Tag {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		t.ID = r.next
	}
	if t.ID >= r.next {
		r.next = t.ID + 1
	}
	r.tags = append(r.tags, t)
	return t
}

func (r *Tags) FindBySlug(_ context.Context, slug string) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, t := range r.tags {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *Tags) ListForPosts(_ context.Context, postIDs []int64) (map[int64][]models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.posts.mu.Lock()
	defer r.posts.mu.Unlock()

	out := make(map[int64][]models.Tag, len(postIDs))
	for _, id := range postIDs {
		for _, t := range r.tags {
			if contains(r.posts.tags[id], t.ID) {
				out[id] = append(out[id], t)
			}
		}
		sort.Slice(out[id], func(i, j int) bool { return out[id][i].Name < out[id][j].Name })
	}
	return out, nil
}

// Comments is an in-memory comment repository.
type Comments struct {
	mu       sync.Mutex
	comments []models.Comment
	clock    time.Time

	Err error
}

// NewComments creates an empty repository.
func NewComments() *Comments {
	return &Comments{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// All returns every stored comment, active or not, in creation order.
func (r *Comments) All() []models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Comment(nil), r.comments...)
}

func (r *Comments) ListActiveByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID && c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Comments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	// Each comment is one second newer than the last so ordering is stable.
	r.clock = r.clock.Add(time.Second)
	stored := *c
	stored.ID = uuid.New()
	stored.CreatedAt = r.clock
	stored.UpdatedAt = r.clock
	r.comments = append(r.comments, stored)
	return &stored, nil
}

// Outbox records sent messages instead of delivering them.
type Outbox struct {
	mu   sync.Mutex
	sent []mailer.Message

	// Err, when set, is returned by Send and nothing is recorded.
	Err error
}

func (o *Outbox) Send(_ context.Context, msg *mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	if len(msg.To) == 0 {
		return mailer.ErrNoRecipients
	}
	o.sent = append(o.sent, *msg)
	return nil
}

// Sent returns the recorded messages.
func (o *Outbox) Sent() []mailer.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]mailer.Message(nil), o.sent...)
}

// ErrUnavailable is a generic failure for simulating broken dependencies.
var ErrUnavailable = errors.New("blogtest: unavailable")

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
