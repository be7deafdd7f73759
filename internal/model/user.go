package model

import "time"

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleMentor || r == RoleMentee
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsMentor checks if user is registered as a mentor
func (u *User) IsMentor() bool {
	return u.Role == RoleMentor
}

// IsMentee checks if user is registered as a mentee
func (u *User) IsMentee() bool {
	return u.Role == RoleMentee
}

// Actor is the authenticated identity attached to every request
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}
