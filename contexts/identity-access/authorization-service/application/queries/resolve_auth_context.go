package queries

import (
	"context"

	"atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/shared/authctx"
)

// ResolveAuthContextUseCase builds the immutable per-request caller identity
// from an authenticated user's roles. It runs once per request, after the
// session resolves and before any handler.
type ResolveAuthContextUseCase struct {
	Repository ports.RoleRepository
}

func (u ResolveAuthContextUseCase) Execute(ctx context.Context, userID, username, companyID string) (authctx.Context, error) {
	roles, err := u.Repository.ListUserRoles(ctx, userID)
	if err != nil {
		return authctx.Context{}, err
	}

	grants := make([]authctx.RoleGrant, 0, len(roles))
	for _, role := range roles {
		grants = append(grants, role.Grant())
	}
	return authctx.Context{
		UserID:    userID,
		Username:  username,
		CompanyID: companyID,
		Roles:     grants,
	}, nil
}
