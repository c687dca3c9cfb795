package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleBanned Role = "banned"
)

// User represents a user account
type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         Role           `db:"role" json:"role"`
	Suspended    bool           `db:"suspended" json:"suspended"`
	Bio          sql.NullString `db:"bio" json:"bio,omitempty"`
	AvatarURL    sql.NullString `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsBanned returns true if user has been banned
func (u *User) IsBanned() bool {
	return u.Role == RoleBanned
}

// IsActive returns true if user is neither suspended nor banned
func (u *User) IsActive() bool {
	return !u.Suspended && !u.IsBanned()
}

// Summary is the public projection of a user used in listings
type Summary struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Username  string         `db:"username" json:"username"`
	Role      Role           `db:"role" json:"role"`
	AvatarURL sql.NullString `db:"avatar_url" json:"avatar_url,omitempty"`
}
