package admin

// UpdateRoleRequest changes a user's role directly
type UpdateRoleRequest struct {
	Role   string `json:"role" validate:"required,oneof=user admin"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// SuspendRequest sets or clears a user's suspension
type SuspendRequest struct {
	Suspended *bool  `json:"suspended" validate:"required"`
	Reason    string `json:"reason,omitempty" validate:"max=500"`
}

// HiddenRequest sets or clears a post's hidden flag
type HiddenRequest struct {
	Hidden *bool  `json:"hidden" validate:"required"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}
