package comment

// CreateRequest represents a comment creation request
type CreateRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=5000"`
	ParentID string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}
