package social

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// FollowEdge is a single row per (follower, followee) pair. Modelling the
// edge as one row makes follow/unfollow a single atomic statement and keeps
// the two sides of the relationship symmetric by construction.
type FollowEdge struct {
	FollowerID uuid.UUID `db:"follower_id" json:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id" json:"followee_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Counts holds both sides of a user's follow totals
type Counts struct {
	Followers int `db:"followers" json:"followers_count"`
	Following int `db:"following" json:"following_count"`
}

// ListItem is one entry of a followers/following listing, enriched with
// whether the viewer follows that user.
type ListItem struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Username    string         `db:"username" json:"username"`
	AvatarURL   sql.NullString `db:"avatar_url" json:"avatar_url,omitempty"`
	IsFollowing bool           `db:"is_following" json:"is_following"`
}
