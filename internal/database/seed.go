package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/slug"
)

// seedPost describes a development post inserted by Seed.
type seedPost struct {
	title   string
	body    string
	publish time.Time
	status  string
	tags    []string
}

var seedPosts = []seedPost{
	{
		title:   "Hello World",
		body:    "Welcome to **Inkwell**. This is the first post on the blog.",
		publish: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		status:  "published",
		tags:    []string{"News"},
	},
	{
		title:   "Writing HTTP Handlers in Go",
		body:    "Handlers are plain functions:\n\n```go\nfunc hello(w http.ResponseWriter, r *http.Request) {\n\tw.Write([]byte(\"hi\"))\n}\n```\n",
		publish: time.Date(2024, 2, 11, 14, 30, 0, 0, time.UTC),
		status:  "published",
		tags:    []string{"Go", "Web"},
	},
	{
		title:   "Paginating Query Results",
		body:    "Fixed page sizes keep listing pages predictable.",
		publish: time.Date(2024, 3, 2, 8, 15, 0, 0, time.UTC),
		status:  "published",
		tags:    []string{"Go", "Databases"},
	},
	{
		title:   "Postgres Indexes for Blog Listings",
		body:    "An index on `(status, publish DESC)` serves the listing query.",
		publish: time.Date(2024, 4, 20, 17, 0, 0, 0, time.UTC),
		status:  "published",
		tags:    []string{"Databases"},
	},
	{
		title:   "Unfinished Thoughts",
		body:    "This draft is not visible on the public site.",
		publish: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		status:  "draft",
		tags:    []string{"News"},
	},
}

// Seed populates the database with development data: one author, a few
// tagged posts (one of them a draft) and comments on the first post. It is
// a no-op when any user already exists. Publish days are taken in loc,
// which must match the location the post store uses.
func Seed(db *sql.DB, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var authorID string
	err = tx.QueryRow(`
		INSERT INTO users (email, display_name) VALUES ($1, $2) RETURNING id
	`, "author@inkwell.local", "Inkwell Author").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	tagIDs := make(map[string]int64)
	var firstPostID int64
	for i, sp := range seedPosts {
		var postID int64
		err := tx.QueryRow(`
			INSERT INTO posts (title, slug, body, author_id, publish, publish_day, status)
			VALUES ($1, $2, $3, $4, $5, $6::date, $7)
			RETURNING id
		`, sp.title, slug.Generate(sp.title), sp.body, authorID, sp.publish,
			sp.publish.In(loc).Format(time.DateOnly), sp.status).Scan(&postID)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", sp.title, err)
		}
		if i == 0 {
			firstPostID = postID
		}

		for _, name := range sp.tags {
			tagID, ok := tagIDs[name]
			if !ok {
				if err := tx.QueryRow(`
					INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id
				`, name, slug.Generate(name)).Scan(&tagID); err != nil {
					return fmt.Errorf("seed insert tag %q: %w", name, err)
				}
				tagIDs[name] = tagID
			}
			if _, err := tx.Exec(`
				INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			`, postID, tagID); err != nil {
				return fmt.Errorf("seed tag post %q: %w", sp.title, err)
			}
		}
	}

	comments := []struct {
		name, email, body string
		active            bool
	}{
		{"Ann", "ann@example.com", "Congratulations on the launch!", true},
		{"Bob", "bob@example.com", "Looking forward to more posts.", true},
		{"Spammer", "spam@example.com", "Buy cheap watches.", false},
	}
	for _, c := range comments {
		if _, err := tx.Exec(`
			INSERT INTO comments (post_id, name, email, body, active)
			VALUES ($1, $2, $3, $4, $5)
		`, firstPostID, c.name, c.email, c.body, c.active); err != nil {
			return fmt.Errorf("seed insert comment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development content",
		"author", "author@inkwell.local",
		"posts", len(seedPosts),
		"tags", len(tagIDs),
	)
	return nil
}
