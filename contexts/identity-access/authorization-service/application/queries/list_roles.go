package queries

import (
	"context"
	"log/slog"

	application "atlas/contexts/identity-access/authorization-service/application"
	"atlas/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"
)

// ListRolesUseCase returns every role in the registry. Admin-gated: the
// literal role name is required, the All flag does not qualify.
type ListRolesUseCase struct {
	Repository ports.RoleRepository
	Logger     *slog.Logger
}

func (u ListRolesUseCase) Execute(ctx context.Context, actor authctx.Context) ([]entities.Role, error) {
	if !actor.IsAdmin() {
		application.ResolveLogger(u.Logger).Warn("role listing denied",
			"event", "authz_list_roles_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", actor.UserID,
		)
		return nil, domainerrors.ErrAdminRequired
	}
	return u.Repository.ListRoles(ctx)
}
