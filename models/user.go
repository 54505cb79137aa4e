package models

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

type User struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"passwordHash"` // bcrypt; stripped before leaving the API
	CreatedAt    time.Time `json:"createdAt"`
}

// Public drops the credential so the user can be rendered.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
