package moderation

// CreateReportRequest represents a report filed by a user
type CreateReportRequest struct {
	TargetType  string `json:"target_type" validate:"required,oneof=post user comment"`
	TargetID    string `json:"target_id" validate:"required,uuid"`
	Reason      string `json:"reason" validate:"required,report_reason"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// UpdateReportRequest represents a partial admin update. Omitted fields are
// left unchanged.
type UpdateReportRequest struct {
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=pending reviewing resolved dismissed"`
	ModerationNotes *string `json:"moderation_notes,omitempty" validate:"omitempty,max=2000"`
	ActionTaken     *string `json:"action_taken,omitempty" validate:"omitempty,mod_action"`
}

// ListFilter narrows the moderation queue listing
type ListFilter struct {
	Status     string
	Reason     string
	TargetType string
	Limit      int
	Offset     int
}
