package entities

import (
	"time"

	"atlas/internal/shared/authctx"
)

// Role models a named permission bundle assignable to users. Roles are
// global across tenants and immutable once created.
type Role struct {
	RoleID      string                `json:"role_id"`
	Name        string                `json:"name"`
	Permissions authctx.PermissionSet `json:"permissions"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Grant converts the role to the guard's view of it.
func (r Role) Grant() authctx.RoleGrant {
	return authctx.RoleGrant{
		RoleID:      r.RoleID,
		Name:        r.Name,
		Permissions: r.Permissions,
	}
}
