package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status is the report state machine: pending is initial, resolved and
// dismissed are terminal. Admins may jump straight from pending to a
// terminal state; the layer below does not force the intermediate step.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// IsTerminal reports whether no further transition happens in normal flow
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// Reason is the closed set of report reasons
type Reason string

const (
	ReasonSpam           Reason = "spam"
	ReasonHarassment     Reason = "harassment"
	ReasonHateSpeech     Reason = "hate_speech"
	ReasonNudity         Reason = "nudity"
	ReasonViolence       Reason = "violence"
	ReasonMisinformation Reason = "misinformation"
	ReasonCopyright      Reason = "copyright"
	ReasonOther          Reason = "other"
)

// Action is what an admin chose to do about a report
type Action string

const (
	ActionNone          Action = "none"
	ActionWarning       Action = "warning"
	ActionHideContent   Action = "hide_content"
	ActionDeleteContent Action = "delete_content"
	ActionSuspendUser   Action = "suspend_user"
	ActionBanUser       Action = "ban_user"
)

// TargetType discriminates what a report or admin action points at
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetUser    TargetType = "user"
	TargetComment TargetType = "comment"
)

// Target is the tagged reference to the reported entity. Exactly one entity
// is referenced per report; the pair of discriminant and id makes that a
// structural property instead of three optional fields.
type Target struct {
	Type TargetType `db:"target_type" json:"target_type"`
	ID   uuid.UUID  `db:"target_id" json:"target_id"`
}

// Report is a user's complaint about a post, user or comment
type Report struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	ReporterID      uuid.UUID      `db:"reporter_id" json:"reporter_id"`
	TargetType      TargetType     `db:"target_type" json:"target_type"`
	TargetID        uuid.UUID      `db:"target_id" json:"target_id"`
	Reason          Reason         `db:"reason" json:"reason"`
	Description     sql.NullString `db:"description" json:"description,omitempty"`
	Status          Status         `db:"status" json:"status"`
	ModeratorID     uuid.NullUUID  `db:"moderator_id" json:"moderator_id,omitempty"`
	ModerationNotes sql.NullString `db:"moderation_notes" json:"moderation_notes,omitempty"`
	ActionTaken     Action         `db:"action_taken" json:"action_taken"`
	ReviewedAt      sql.NullTime   `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ResolvedAt      sql.NullTime   `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// Target returns the report's tagged target reference
func (r *Report) Target() Target {
	return Target{Type: r.TargetType, ID: r.TargetID}
}

// ListItem is a report enriched with reporter/moderator names for the
// moderation queue view.
type ListItem struct {
	Report
	ReporterUsername  string         `db:"reporter_username" json:"reporter_username"`
	ModeratorUsername sql.NullString `db:"moderator_username" json:"moderator_username,omitempty"`
}

// StatusCount is one row of the reports-by-status stats
type StatusCount struct {
	Status Status `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// ReasonCount is one row of the reports-by-reason stats
type ReasonCount struct {
	Reason Reason `db:"reason" json:"reason"`
	Count  int    `db:"count" json:"count"`
}

// Stats is the aggregate view over reports
type Stats struct {
	Total       int            `json:"total"`
	ByStatus    []*StatusCount `json:"by_status"`
	ByReason    []*ReasonCount `json:"by_reason"`
	RecentCount int            `json:"recent_count"`
}
