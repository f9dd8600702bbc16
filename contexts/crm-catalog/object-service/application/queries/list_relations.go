package queries

import (
	"context"

	"atlas/contexts/crm-catalog/object-service/domain/entities"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

// ListRelationsUseCase lists the edges touching one of the actor's company
// records, in either direction.
type ListRelationsUseCase struct {
	Repository ports.Repository
}

func (u ListRelationsUseCase) Execute(ctx context.Context, actor authctx.Context, objectID string) ([]entities.ObjectRelation, error) {
	// Anchor lookup enforces tenancy before any edges are read.
	if _, err := u.Repository.GetObject(ctx, objectID, actor.CompanyID); err != nil {
		return nil, err
	}
	return u.Repository.ListRelations(ctx, objectID, actor.CompanyID)
}
