package authctx

import "context"

// Flag names a single capability gate checked before a mutation.
type Flag string

const (
	FlagCreate      Flag = "create"
	FlagRead        Flag = "read"
	FlagUpdate      Flag = "update"
	FlagDelete      Flag = "delete"
	FlagManageUsers Flag = "manage_users"
)

// PermissionSet enumerates the capability flags a role can grant.
// All is a super-permission that short-circuits create/read/update/delete.
type PermissionSet struct {
	All         bool `json:"all"`
	Create      bool `json:"create"`
	Read        bool `json:"read"`
	Update      bool `json:"update"`
	Delete      bool `json:"delete"`
	ManageUsers bool `json:"manage_users"`
}

// Grants reports whether this set alone grants the flag.
func (p PermissionSet) Grants(flag Flag) bool {
	if p.All {
		return true
	}
	switch flag {
	case FlagCreate:
		return p.Create
	case FlagRead:
		return p.Read
	case FlagUpdate:
		return p.Update
	case FlagDelete:
		return p.Delete
	case FlagManageUsers:
		return p.ManageUsers
	default:
		return false
	}
}

// RoleGrant is one assigned role as the guard sees it.
type RoleGrant struct {
	RoleID      string        `json:"role_id"`
	Name        string        `json:"name"`
	Permissions PermissionSet `json:"permissions"`
}

// AdminRoleName gates the administrative endpoints. The gate matches the role
// name literally and does not consult the All flag.
const AdminRoleName = "admin"

// Context is the immutable caller identity constructed once per request and
// threaded explicitly into use cases. It is never stored in globals.
type Context struct {
	UserID    string
	Username  string
	CompanyID string
	Roles     []RoleGrant
}

// HasPermission folds the caller's roles: any single role granting the flag,
// or carrying All, suffices.
func (c Context) HasPermission(flag Flag) bool {
	for _, role := range c.Roles {
		if role.Permissions.Grants(flag) {
			return true
		}
	}
	return false
}

// HasRole reports whether a role with exactly this name is assigned.
func (c Context) HasRole(name string) bool {
	for _, role := range c.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller holds the literal admin role.
func (c Context) IsAdmin() bool {
	return c.HasRole(AdminRoleName)
}

type contextKey struct{}

// With returns a request context carrying the caller identity.
func With(parent context.Context, caller Context) context.Context {
	return context.WithValue(parent, contextKey{}, caller)
}

// From extracts the caller identity set by the session middleware.
func From(ctx context.Context) (Context, bool) {
	caller, ok := ctx.Value(contextKey{}).(Context)
	return caller, ok
}
