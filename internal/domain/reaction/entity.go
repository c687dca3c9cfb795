package reaction

import (
	"time"

	"github.com/google/uuid"
)

// Kind is a reaction kind. A user holds at most one kind per entity; the
// storage primary key makes like/dislike mutually exclusive by construction.
type Kind string

const (
	KindNone    Kind = ""
	KindLike    Kind = "like"
	KindDislike Kind = "dislike"
)

// Valid reports whether k is a settable reaction kind
func (k Kind) Valid() bool {
	return k == KindLike || k == KindDislike
}

// PostReaction is one user's reaction to a post
type PostReaction struct {
	PostID    uuid.UUID `db:"post_id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      Kind      `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// CommentReaction is one user's reaction to a comment
type CommentReaction struct {
	CommentID uuid.UUID `db:"comment_id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      Kind      `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// Counts is the like/dislike tally returned from every toggle
type Counts struct {
	Likes    int `db:"likes" json:"likes"`
	Dislikes int `db:"dislikes" json:"dislikes"`
}
