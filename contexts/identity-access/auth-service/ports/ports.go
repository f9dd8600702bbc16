package ports

import (
	"context"
	"time"

	"atlas/contexts/identity-access/auth-service/domain/entities"
	"atlas/internal/shared/authctx"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// TokenGenerator mints opaque session tokens.
type TokenGenerator interface {
	NewToken(ctx context.Context) (string, error)
}

// PasswordHasher produces and verifies self-contained salted credentials.
// Verify must use a constant-time comparison.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, encoded string) bool
}

// Repository is the persistence boundary for companies and users.
type Repository interface {
	// EnsureCompany gets or creates a company by unique name. The boolean
	// reports whether this call created the row; the first user registered
	// into a freshly created company becomes its admin.
	EnsureCompany(ctx context.Context, company entities.Company) (entities.Company, bool, error)
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (entities.User, bool, error)
}

// SessionStore holds server-side sessions keyed by opaque token.
type SessionStore interface {
	CreateSession(ctx context.Context, session entities.Session) error
	GetSession(ctx context.Context, token string, now time.Time) (entities.Session, bool, error)
	ExtendSession(ctx context.Context, token string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
}

// RoleRegistry is the registration-time boundary into the authorization
// service: lazy bootstrap-role creation and the initial assignment. Signatures
// use shared authctx types so the authorization module satisfies this port
// without cross-context imports.
type RoleRegistry interface {
	EnsureRole(ctx context.Context, name string, permissions authctx.PermissionSet) (authctx.RoleGrant, error)
	AssignRole(ctx context.Context, userID string, roleID string) error
	ListUserRoles(ctx context.Context, userID string) ([]authctx.RoleGrant, error)
}
