package queries

import (
	"context"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

type GetObjectUseCase struct {
	Repository ports.Repository
}

func (u GetObjectUseCase) Execute(ctx context.Context, actor authctx.Context, objectID string) (entities.Object, error) {
	return u.Repository.GetObject(ctx, objectID, actor.CompanyID)
}
