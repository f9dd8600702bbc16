package entities

import "time"

// UserRole joins a user to a role. The (user, role) pair is unique and the
// join carries no independent identity.
type UserRole struct {
	UserID     string    `json:"user_id"`
	RoleID     string    `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
