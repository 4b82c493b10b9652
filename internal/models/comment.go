package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment attached to a post. Only active comments are
// shown publicly; inactive ones are held for moderation.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    int64     `json:"post_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
