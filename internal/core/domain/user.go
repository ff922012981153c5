package domain

import "time"

// UserAccount is the identity root. A user authenticates with a username or
// email plus password, always in the context of a single role; the role is
// immutable after creation.
type UserAccount struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
