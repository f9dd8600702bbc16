package application

import (
	"context"
	"log/slog"
	"strings"

	"atlas/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"
)

// RegistryService is the role registry: idempotent role creation, plain
// assignment, and role resolution. It carries no actor checks of its own;
// registration uses it directly, admin endpoints wrap it with guard checks.
type RegistryService struct {
	Repository ports.RoleRepository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

// EnsureRole gets or creates a role by unique name. Permissions bind only on
// creation; an existing role keeps its original set.
func (s RegistryService) EnsureRole(ctx context.Context, name string, permissions authctx.PermissionSet) (authctx.RoleGrant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return authctx.RoleGrant{}, domainerrors.ErrInvalidRoleName
	}

	roleID, err := s.IDs.NewID(ctx)
	if err != nil {
		return authctx.RoleGrant{}, err
	}
	role, err := s.Repository.EnsureRole(ctx, entities.Role{
		RoleID:      roleID,
		Name:        name,
		Permissions: permissions,
		CreatedAt:   s.Clock.Now().UTC(),
	})
	if err != nil {
		return authctx.RoleGrant{}, err
	}
	if role.RoleID == roleID {
		ResolveLogger(s.Logger).Info("role created",
			"event", "authz_role_created",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"role_id", role.RoleID,
			"role", role.Name,
		)
	}
	return role.Grant(), nil
}

// AssignRole links a user to an existing role.
func (s RegistryService) AssignRole(ctx context.Context, userID string, roleID string) error {
	if _, err := s.Repository.GetRole(ctx, roleID); err != nil {
		return err
	}
	if err := s.Repository.AssignRole(ctx, entities.UserRole{
		UserID:     userID,
		RoleID:     roleID,
		AssignedAt: s.Clock.Now().UTC(),
	}); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("role assigned",
		"event", "authz_role_assigned",
		"module", "identity-access/authorization-service",
		"layer", "application",
		"user_id", userID,
		"role_id", roleID,
	)
	return nil
}

// ListUserRoles returns the caller-facing grants for a user.
func (s RegistryService) ListUserRoles(ctx context.Context, userID string) ([]authctx.RoleGrant, error) {
	roles, err := s.Repository.ListUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	grants := make([]authctx.RoleGrant, 0, len(roles))
	for _, role := range roles {
		grants = append(grants, role.Grant())
	}
	return grants, nil
}
