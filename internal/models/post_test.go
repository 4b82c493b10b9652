package models

import (
	"testing"
	"time"
)

// TestPostIsPublished verifies that IsPublished returns true only for
// the "published" status.
func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "published", status: PostStatusPublished, want: true},
		{name: "draft", status: PostStatusDraft, want: false},
		{name: "empty status", status: PostStatus(""), want: false},
		{name: "uppercase PUBLISHED", status: PostStatus("PUBLISHED"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.want {
				t.Errorf("Post{Status: %q}.IsPublished() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestPostURL(t *testing.T) {
	tests := []struct {
		name    string
		publish time.Time
		slug    string
		want    string
	}{
		{"unpadded month and day", time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC), "hello-world", "/2024/1/5/hello-world"},
		{"two digit parts", time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), "year-end", "/2023/12/31/year-end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Publish: tt.publish, Slug: tt.slug}
			if got := p.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestPostURLUsesPublishLocation verifies that the date parts follow the
// location carried by Publish, not UTC.
func TestPostURLUsesPublishLocation(t *testing.T) {
	utc := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)
	plus2 := time.FixedZone("UTC+2", 2*60*60)

	p := &Post{Publish: utc.In(plus2), Slug: "late-night"}
	if got, want := p.URL(), "/2024/1/6/late-night"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestPostShareURL(t *testing.T) {
	p := &Post{ID: 42}
	if got, want := p.ShareURL(), "/42/share"; got != want {
		t.Errorf("ShareURL() = %q, want %q", got, want)
	}
}

func TestTagURL(t *testing.T) {
	tag := &Tag{Name: "Go", Slug: "go"}
	if got, want := tag.URL(), "/tag/go"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
