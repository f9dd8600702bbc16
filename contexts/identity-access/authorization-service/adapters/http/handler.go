package httpadapter

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"atlas/contexts/identity-access/authorization-service/application/commands"
	"atlas/contexts/identity-access/authorization-service/application/queries"
	"atlas/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/authorization-service/domain/errors"
	transport "atlas/contexts/identity-access/authorization-service/transport/http"
	"atlas/internal/shared/authctx"
)

var validate = validator.New()

// Handler adapts HTTP DTOs to application use cases.
type Handler struct {
	AssignRole       commands.AssignRoleUseCase
	ListRoles        queries.ListRolesUseCase
	ListCompanyUsers queries.ListCompanyUsersUseCase
	ResolveContext   queries.ResolveAuthContextUseCase
	Logger           *slog.Logger
}

func (h Handler) ListRolesHandler(ctx context.Context, actor authctx.Context) ([]transport.RoleResponse, error) {
	roles, err := h.ListRoles.Execute(ctx, actor)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, toRoleResponse(role))
	}
	return responses, nil
}

func (h Handler) AssignRoleHandler(ctx context.Context, actor authctx.Context, targetUserID string, req transport.AssignRoleRequest) error {
	if err := validate.Struct(req); err != nil {
		return domainerrors.ErrInvalidAssignment
	}
	return h.AssignRole.Execute(ctx, actor, targetUserID, req.RoleID)
}

func (h Handler) ListCompanyUsersHandler(ctx context.Context, actor authctx.Context) ([]transport.CompanyUserResponse, error) {
	users, err := h.ListCompanyUsers.Execute(ctx, actor)
	if err != nil {
		return nil, err
	}
	responses := make([]transport.CompanyUserResponse, 0, len(users))
	for _, user := range users {
		roles := make([]transport.RoleResponse, 0, len(user.Roles))
		for _, role := range user.Roles {
			roles = append(roles, toRoleResponse(role))
		}
		responses = append(responses, transport.CompanyUserResponse{
			ID:        user.User.UserID,
			Username:  user.User.Username,
			CompanyID: user.User.CompanyID,
			CreatedAt: user.User.CreatedAt,
			Roles:     roles,
		})
	}
	return responses, nil
}

// ResolveContextHandler builds the request's caller identity after session
// authentication. The middleware is its only caller.
func (h Handler) ResolveContextHandler(ctx context.Context, userID, username, companyID string) (authctx.Context, error) {
	return h.ResolveContext.Execute(ctx, userID, username, companyID)
}

func toRoleResponse(role entities.Role) transport.RoleResponse {
	return transport.RoleResponse{
		ID:   role.RoleID,
		Name: role.Name,
		Permissions: transport.PermissionsResponse{
			All:         role.Permissions.All,
			Create:      role.Permissions.Create,
			Read:        role.Permissions.Read,
			Update:      role.Permissions.Update,
			Delete:      role.Permissions.Delete,
			ManageUsers: role.Permissions.ManageUsers,
		},
		CreatedAt: role.CreatedAt,
	}
}
