package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func TestPostStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db, time.UTC)
	ctx := context.Background()
	authorID := testAuthor(t, db)

	publish := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	created, err := s.Create(ctx, &models.Post{
		Title:    "Hello World " + uuid.NewString()[:8],
		Body:     "body",
		Publish:  publish,
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(context.Background(), created.ID) })
	if created.ID == 0 {
		t.Error("expected generated ID")
	}
	if created.Slug == "" {
		t.Error("expected slug derived from title")
	}
	if created.AuthorName != "Store Test" {
		t.Errorf("author name: got %q, want %q", created.AuthorName, "Store Test")
	}

	dayStart := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	found, err := s.FindPublishedBySlug(ctx, created.Slug, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("FindPublishedBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected post %d, got %+v", created.ID, found)
	}

	nextDay := dayStart.AddDate(0, 0, 1)
	found, err = s.FindPublishedBySlug(ctx, created.Slug, nextDay, nextDay.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("FindPublishedBySlug (next day): %v", err)
	}
	if found != nil {
		t.Error("expected nil for wrong publish date")
	}

	byID, err := s.FindPublishedByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindPublishedByID: %v", err)
	}
	if byID == nil || byID.Title != created.Title {
		t.Errorf("FindPublishedByID: got %+v", byID)
	}
}

func TestPostStoreDraftNotFound(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db, time.UTC)
	ctx := context.Background()
	authorID := testAuthor(t, db)

	draft, err := s.Create(ctx, &models.Post{
		Title:    "Draft " + uuid.NewString()[:8],
		Body:     "draft",
		Status:   models.PostStatusDraft,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(context.Background(), draft.ID) })

	found, err := s.FindPublishedByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("FindPublishedByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil for draft post")
	}

	from := draft.Publish.Add(-time.Hour)
	found, err = s.FindPublishedBySlug(ctx, draft.Slug, from, from.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("FindPublishedBySlug: %v", err)
	}
	if found != nil {
		t.Error("expected nil for draft post by slug")
	}
}

func TestPostStoreListPublishedByTag(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db, time.UTC)
	tags := NewTagStore(db)
	ctx := context.Background()
	authorID := testAuthor(t, db)

	tagSlug := "store-test-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanTags(t, db, tagSlug) })
	tag, err := tags.Create(ctx, &models.Tag{Name: "Store Test", Slug: tagSlug})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	base := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 4; i++ {
		p, err := posts.Create(ctx, &models.Post{
			Title:    "Tagged " + uuid.NewString()[:8],
			Publish:  base.AddDate(0, 0, i),
			Status:   models.PostStatusPublished,
			AuthorID: authorID,
		})
		if err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
		t.Cleanup(func() { posts.Delete(context.Background(), p.ID) })
		ids = append(ids, p.ID)
		if err := posts.SetTags(ctx, p.ID, []int64{tag.ID}); err != nil {
			t.Fatalf("SetTags: %v", err)
		}
	}

	count, err := posts.CountPublished(ctx, &tag.ID)
	if err != nil {
		t.Fatalf("CountPublished: %v", err)
	}
	if count != 4 {
		t.Errorf("count: got %d, want 4", count)
	}

	page, err := posts.ListPublished(ctx, &tag.ID, 3, 0)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("page size: got %d, want 3", len(page))
	}
	// Newest first.
	if page[0].ID != ids[3] || page[2].ID != ids[1] {
		t.Errorf("order: got %d..%d, want %d..%d", page[0].ID, page[2].ID, ids[3], ids[1])
	}

	rest, err := posts.ListPublished(ctx, &tag.ID, 3, 3)
	if err != nil {
		t.Fatalf("ListPublished page 2: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != ids[0] {
		t.Errorf("second page: got %+v", rest)
	}

	all, err := posts.CountPublished(ctx, nil)
	if err != nil {
		t.Fatalf("CountPublished(nil): %v", err)
	}
	if all < 4 {
		t.Errorf("unfiltered count: got %d, want >= 4", all)
	}

	byPost, err := tags.ListForPosts(ctx, ids)
	if err != nil {
		t.Fatalf("ListForPosts: %v", err)
	}
	for _, id := range ids {
		if len(byPost[id]) != 1 || byPost[id][0].Slug != tagSlug {
			t.Errorf("tags for post %d: got %+v", id, byPost[id])
		}
	}
}

func TestPublishDay(t *testing.T) {
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	tests := []struct {
		name    string
		publish time.Time
		loc     *time.Location
		want    string
	}{
		{"utc", time.Date(2024, 1, 5, 22, 30, 0, 0, time.UTC), time.UTC, "2024-01-05"},
		{"nil location is utc", time.Date(2024, 1, 5, 22, 30, 0, 0, time.UTC), nil, "2024-01-05"},
		{"late utc is next local day", time.Date(2024, 1, 5, 22, 30, 0, 0, time.UTC), plus2, "2024-01-06"},
		{"early utc same local day", time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC), plus2, "2024-01-06"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublishDay(tt.publish, tt.loc); got != tt.want {
				t.Errorf("PublishDay: got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPostStoreSlugUniquePerLocalDay covers two posts that fall on
// different UTC dates but the same day in the store's location: they
// would share a public URL, so the second must be rejected.
func TestPostStoreSlugUniquePerLocalDay(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db, time.FixedZone("UTC+2", 2*60*60))
	ctx := context.Background()
	authorID := testAuthor(t, db)

	postSlug := "same-" + uuid.NewString()[:8]
	first, err := s.Create(ctx, &models.Post{
		Title:    "A",
		Slug:     postSlug,
		Publish:  time.Date(2024, 1, 5, 22, 30, 0, 0, time.UTC),
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	t.Cleanup(func() { s.Delete(context.Background(), first.ID) })

	second, err := s.Create(ctx, &models.Post{
		Title:    "B",
		Slug:     postSlug,
		Publish:  time.Date(2024, 1, 6, 1, 0, 0, 0, time.UTC),
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	})
	if second != nil {
		t.Cleanup(func() { s.Delete(context.Background(), second.ID) })
	}
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("Create second: got %v, want ErrSlugTaken", err)
	}

	// A different local day with the same slug is fine.
	third, err := s.Create(ctx, &models.Post{
		Title:    "C",
		Slug:     postSlug,
		Publish:  time.Date(2024, 1, 6, 22, 30, 0, 0, time.UTC),
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Create third: %v", err)
	}
	t.Cleanup(func() { s.Delete(context.Background(), third.ID) })
}

func TestPostStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db, time.UTC)
	ctx := context.Background()
	authorID := testAuthor(t, db)

	p, err := s.Create(ctx, &models.Post{
		Title:    "Doomed " + uuid.NewString()[:8],
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, err := s.FindPublishedByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindPublishedByID: %v", err)
	}
	if found != nil {
		t.Error("expected nil after Delete")
	}
}
