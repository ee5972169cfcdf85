package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        int64
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the first edit
	Title     string
	Content   string
}

// FeedItem is a post joined with its author's username.
type FeedItem struct {
	PostID   int64
	AuthorID uuid.UUID
	Username string
	Title    string
	Content  string
}

// PostPatch is a partial update; nil fields keep their stored value.
// Setting UserID hands the post to another user.
type PostPatch struct {
	UserID  *uuid.UUID
	Title   *string
	Content *string
}

func (p PostPatch) IsEmpty() bool {
	return p.UserID == nil && p.Title == nil && p.Content == nil
}
