package queries

import (
	"context"

	"atlas/contexts/identity-access/auth-service/domain/entities"
	"atlas/contexts/identity-access/auth-service/ports"
)

// CurrentUserUseCase fetches the caller's own user record.
type CurrentUserUseCase struct {
	Repository ports.Repository
}

func (u CurrentUserUseCase) Execute(ctx context.Context, userID string) (entities.User, error) {
	return u.Repository.GetUser(ctx, userID)
}
