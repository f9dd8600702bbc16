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

// CompanyUser is a directory row with its role assignments embedded.
type CompanyUser struct {
	User  ports.UserRecord
	Roles []entities.Role
}

// ListCompanyUsersUseCase lists the actor's company users with roles.
// Admin-gated and hard-scoped to the actor's own company: there is no way to
// ask for another tenant's listing.
type ListCompanyUsersUseCase struct {
	Repository ports.RoleRepository
	Users      ports.UserDirectory
	Logger     *slog.Logger
}

func (u ListCompanyUsersUseCase) Execute(ctx context.Context, actor authctx.Context) ([]CompanyUser, error) {
	if !actor.IsAdmin() {
		application.ResolveLogger(u.Logger).Warn("user listing denied",
			"event", "authz_list_users_denied",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"actor_id", actor.UserID,
		)
		return nil, domainerrors.ErrAdminRequired
	}

	records, err := u.Users.ListCompanyUsers(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	users := make([]CompanyUser, 0, len(records))
	for _, record := range records {
		roles, err := u.Repository.ListUserRoles(ctx, record.UserID)
		if err != nil {
			return nil, err
		}
		users = append(users, CompanyUser{User: record, Roles: roles})
	}
	return users, nil
}
