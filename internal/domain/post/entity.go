package post

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of content a post carries
type Type string

const (
	TypeText     Type = "text"
	TypeImage    Type = "image"
	TypeVideo    Type = "video"
	TypeDocument Type = "document"
	TypeArticle  Type = "article"
)

// Status represents the publication status of a post.
// Status and the hidden flag are independent axes: a published post can
// still be hidden by moderation.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
)

// Post represents a user-authored post
type Post struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	Content     string         `db:"content" json:"content"`
	Type        Type           `db:"type" json:"type"`
	MediaKey    sql.NullString `db:"media_key" json:"media_key,omitempty"`
	Status      Status         `db:"status" json:"status"`
	ScheduledAt sql.NullTime   `db:"scheduled_at" json:"scheduled_at,omitempty"`
	Hidden      bool           `db:"hidden" json:"hidden"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// IsPubliclyVisible reports whether the post itself qualifies for the public
// listing at the given instant. Owner suspension is checked separately since
// it lives on the user record.
func (p *Post) IsPubliclyVisible(now time.Time) bool {
	if p.Hidden {
		return false
	}
	switch p.Status {
	case StatusPublished:
		return true
	case StatusScheduled:
		return p.ScheduledAt.Valid && !p.ScheduledAt.Time.After(now)
	default:
		return false
	}
}

// ListItem is a post row enriched for listing responses
type ListItem struct {
	Post
	AuthorUsername string `db:"author_username" json:"author_username"`
	LikeCount      int    `db:"like_count" json:"like_count"`
	DislikeCount   int    `db:"dislike_count" json:"dislike_count"`
	CommentCount   int    `db:"comment_count" json:"comment_count"`
}
