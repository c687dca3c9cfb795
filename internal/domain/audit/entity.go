package audit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Action is the closed set of auditable admin actions
type Action string

const (
	ActionReportReviewed  Action = "report_reviewed"
	ActionPostHidden      Action = "post_hidden"
	ActionPostUnhidden    Action = "post_unhidden"
	ActionPostDeleted     Action = "post_deleted"
	ActionCommentDeleted  Action = "comment_deleted"
	ActionUserWarned      Action = "user_warned"
	ActionUserSuspended   Action = "user_suspended"
	ActionUserUnsuspended Action = "user_unsuspended"
	ActionUserBanned      Action = "user_banned"
	ActionUserDeleted     Action = "user_deleted"
	ActionRoleChanged     Action = "role_changed"
)

// TargetType tags what the entry refers to. It is a reference, not an
// enforced foreign key: the target may be deleted later and the entry stays.
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetUser    TargetType = "user"
	TargetReport  TargetType = "report"
)

// Entry is one append-only audit record. Entries are never updated or
// deleted once written; no such statement exists anywhere in the codebase.
type Entry struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	AdminID    uuid.UUID      `db:"admin_id" json:"admin_id"`
	Action     Action         `db:"action" json:"action"`
	TargetType TargetType     `db:"target_type" json:"target_type"`
	TargetID   uuid.UUID      `db:"target_id" json:"target_id"`
	Reason     sql.NullString `db:"reason" json:"reason,omitempty"`
	Details    sql.NullString `db:"details" json:"details,omitempty"`
	ReportID   uuid.NullUUID  `db:"report_id" json:"report_id,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ListItem is an entry enriched with the admin's username for display
type ListItem struct {
	Entry
	AdminUsername string `db:"admin_username" json:"admin_username"`
}

// ListFilter narrows the audit listing
type ListFilter struct {
	Action     string
	TargetType string
	AdminName  string
	Limit      int
	Offset     int
}

// ActionCount is one row of the actions-by-type stats
type ActionCount struct {
	Action Action `db:"action" json:"action"`
	Count  int    `db:"count" json:"count"`
}

// AdminCount is one row of the top-admins stats
type AdminCount struct {
	AdminID  uuid.UUID `db:"admin_id" json:"admin_id"`
	Username string    `db:"username" json:"username"`
	Count    int       `db:"count" json:"count"`
}

// Stats is the aggregate view over the audit log
type Stats struct {
	Total       int            `json:"total"`
	ByAction    []*ActionCount `json:"by_action"`
	TopAdmins   []*AdminCount  `json:"top_admins"`
	RecentCount int            `json:"recent_count"`
}
