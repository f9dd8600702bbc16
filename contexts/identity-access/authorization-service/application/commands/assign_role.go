package commands

import (
	"context"
	"log/slog"
	"strings"

	application "atlas/contexts/identity-access/authorization-service/application"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"
)

// AssignRoleUseCase is the admin-facing role assignment. On top of the plain
// registry write it enforces two independent gates: the actor must hold the
// literal admin role, and the target user must belong to the actor's company.
type AssignRoleUseCase struct {
	Registry application.RegistryService
	Users    ports.UserDirectory
	Logger   *slog.Logger
}

func (u AssignRoleUseCase) Execute(ctx context.Context, actor authctx.Context, targetUserID string, roleID string) error {
	logger := application.ResolveLogger(u.Logger)

	if !actor.IsAdmin() {
		logger.Warn("role assignment denied",
			"event", "authz_assign_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"target_id", targetUserID,
			"reason", "admin_required",
		)
		return domainerrors.ErrAdminRequired
	}
	if strings.TrimSpace(roleID) == "" {
		return domainerrors.ErrInvalidAssignment
	}
	if strings.TrimSpace(targetUserID) == "" {
		return domainerrors.ErrUserNotFound
	}

	target, found, err := u.Users.FindUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrUserNotFound
	}
	if target.CompanyID != actor.CompanyID {
		logger.Warn("role assignment denied",
			"event", "authz_assign_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"target_id", targetUserID,
			"reason", "company_mismatch",
		)
		return domainerrors.ErrCompanyMismatch
	}

	return u.Registry.AssignRole(ctx, targetUserID, roleID)
}
