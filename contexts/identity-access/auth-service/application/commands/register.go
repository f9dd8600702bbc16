package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "atlas/contexts/identity-access/auth-service/application"
	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"
	"atlas/contexts/identity-access/auth-service/ports"
	"atlas/internal/shared/authctx"
)

// Bootstrap role permission sets, created lazily on first registration.
// The admin role carries the super-permission plus user management; the
// default user role can create/read/update but not delete.
var (
	adminRolePermissions = authctx.PermissionSet{All: true, ManageUsers: true}
	userRolePermissions  = authctx.PermissionSet{Create: true, Read: true, Update: true}
)

const defaultRoleName = "user"

// RegisterCommand contains transport-agnostic registration input.
type RegisterCommand struct {
	Username    string
	Password    string
	CompanyName string
}

// RegisterResult carries the new user, assigned role, and login session.
type RegisterResult struct {
	User    entities.User
	Roles   []authctx.RoleGrant
	Session entities.Session
}

// RegisterUseCase creates the company (get-or-create by name), the user, the
// bootstrap role assignment, and a login session. The steps are deliberately
// separate statements: uniqueness constraints, not transactions, reconcile
// concurrent registrations.
type RegisterUseCase struct {
	Repository ports.Repository
	Sessions   ports.SessionStore
	Hasher     ports.PasswordHasher
	Roles      ports.RoleRegistry
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Tokens     ports.TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// Execute registers a user and logs them in. The first user of a freshly
// created company receives the admin role; later users receive the default
// user role.
func (u RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (RegisterResult, error) {
	logger := application.ResolveLogger(u.Logger)

	username := strings.TrimSpace(cmd.Username)
	companyName := strings.TrimSpace(cmd.CompanyName)
	if username == "" || cmd.Password == "" || companyName == "" {
		return RegisterResult{}, domainerrors.ErrValidation
	}

	now := u.Clock.Now().UTC()

	companyID, err := u.IDs.NewID(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	company, created, err := u.Repository.EnsureCompany(ctx, entities.Company{
		CompanyID: companyID,
		Name:      companyName,
		CreatedAt: now,
	})
	if err != nil {
		return RegisterResult{}, err
	}

	passwordHash, err := u.Hasher.Hash(cmd.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	userID, err := u.IDs.NewID(ctx)
	if err != nil {
		return RegisterResult{}, err
	}
	user := entities.User{
		UserID:       userID,
		Username:     username,
		PasswordHash: passwordHash,
		CompanyID:    company.CompanyID,
		CreatedAt:    now,
	}
	if err := u.Repository.CreateUser(ctx, user); err != nil {
		return RegisterResult{}, err
	}

	roleName := defaultRoleName
	rolePermissions := userRolePermissions
	if created {
		roleName = authctx.AdminRoleName
		rolePermissions = adminRolePermissions
	}
	role, err := u.Roles.EnsureRole(ctx, roleName, rolePermissions)
	if err != nil {
		return RegisterResult{}, err
	}
	if err := u.Roles.AssignRole(ctx, user.UserID, role.RoleID); err != nil {
		return RegisterResult{}, err
	}

	session, err := startSession(ctx, u.Sessions, u.Tokens, user.UserID, now, u.SessionTTL)
	if err != nil {
		return RegisterResult{}, err
	}

	logger.Info("user registered",
		"event", "auth_user_registered",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.UserID,
		"company_id", company.CompanyID,
		"company_created", created,
		"role", roleName,
	)

	return RegisterResult{
		User:    user,
		Roles:   []authctx.RoleGrant{role},
		Session: session,
	}, nil
}
