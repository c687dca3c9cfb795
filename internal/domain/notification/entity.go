package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type classifies the event that produced a notification
type Type string

const (
	TypeFollow           Type = "follow"
	TypeLikePost         Type = "like_post"
	TypeDislikePost      Type = "dislike_post"
	TypeCommentPost      Type = "comment_post"
	TypeReportReceived   Type = "report_received"
	TypeContentHidden    Type = "content_hidden"
	TypeContentDeleted   Type = "content_deleted"
	TypeWarning          Type = "warning"
	TypeAccountSuspended Type = "account_suspended"
	TypeAccountBanned    Type = "account_banned"
	TypeRoleChanged      Type = "role_changed"
)

// Notification is a single-recipient event record. It is written as a side
// effect of social and moderation actions and only ever mutated by its
// recipient (mark read / delete).
type Notification struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	ToUserID   uuid.UUID      `db:"to_user_id" json:"to_user_id"`
	FromUserID uuid.UUID      `db:"from_user_id" json:"from_user_id"`
	Type       Type           `db:"type" json:"type"`
	PostID     uuid.NullUUID  `db:"post_id" json:"post_id,omitempty"`
	CommentID  uuid.NullUUID  `db:"comment_id" json:"comment_id,omitempty"`
	ReportID   uuid.NullUUID  `db:"report_id" json:"report_id,omitempty"`
	Details    sql.NullString `db:"details" json:"details,omitempty"`
	IsRead     bool           `db:"is_read" json:"is_read"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// Ref builders keep call sites terse.

func PostRef(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}

func CommentRef(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}

func ReportRef(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}
