package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment on a post, optionally replying to another comment
type Comment struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	PostID    uuid.UUID     `db:"post_id" json:"post_id"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id"`
	ParentID  uuid.NullUUID `db:"parent_id" json:"parent_id,omitempty"`
	Content   string        `db:"content" json:"content"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// ListItem is a comment enriched for listing
type ListItem struct {
	Comment
	AuthorUsername string `db:"author_username" json:"author_username"`
	LikeCount      int    `db:"like_count" json:"like_count"`
	DislikeCount   int    `db:"dislike_count" json:"dislike_count"`
}
