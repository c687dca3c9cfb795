package post

import "time"

// CreateRequest represents a post creation request
type CreateRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Content     string     `json:"content" validate:"required,max=50000"`
	Type        string     `json:"type" validate:"required,oneof=text image video document article"`
	Status      string     `json:"status" validate:"post_status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateRequest represents a partial post update by its owner
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content     *string    `json:"content,omitempty" validate:"omitempty,max=50000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,post_status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// ListFilter controls the public listing query
type ListFilter struct {
	AuthorID string
	Limit    int
	Offset   int
}
