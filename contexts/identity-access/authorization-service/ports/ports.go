package ports

import (
	"context"
	"time"

	"atlas/contexts/identity-access/authorization-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RoleRepository is the persistence boundary for roles and assignments.
type RoleRepository interface {
	// EnsureRole gets or creates a role by unique name. Permissions are fixed
	// at creation; a later call with the same name returns the existing row
	// untouched. Concurrent calls are reconciled by the unique constraint.
	EnsureRole(ctx context.Context, role entities.Role) (entities.Role, error)
	GetRole(ctx context.Context, roleID string) (entities.Role, error)
	ListRoles(ctx context.Context) ([]entities.Role, error)
	// AssignRole returns ErrRoleAlreadyAssigned when the pair exists.
	AssignRole(ctx context.Context, assignment entities.UserRole) error
	ListUserRoles(ctx context.Context, userID string) ([]entities.Role, error)
}

// UserRecord is the directory projection of a user owned by the auth service.
type UserRecord struct {
	UserID    string
	Username  string
	CompanyID string
	CreatedAt time.Time
}

// UserDirectory is the read-only boundary into identity state, used for
// company-scope checks and admin user listings.
type UserDirectory interface {
	FindUser(ctx context.Context, userID string) (UserRecord, bool, error)
	ListCompanyUsers(ctx context.Context, companyID string) ([]UserRecord, error)
}
