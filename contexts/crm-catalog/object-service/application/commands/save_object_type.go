package commands

import (
	"context"
	"log/slog"
	"strings"

	application "atlas/contexts/crm-catalog/object-service/application"
	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

// SaveObjectTypeUseCase registers a catalog type for the actor's company.
// Saving an existing name returns the existing entry unchanged.
type SaveObjectTypeUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

func (u SaveObjectTypeUseCase) Execute(ctx context.Context, actor authctx.Context, name string, template entities.Fields) (entities.ObjectType, error) {
	if !actor.HasPermission(authctx.FlagCreate) {
		return entities.ObjectType{}, domainerrors.ErrPermissionDenied
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.ObjectType{}, domainerrors.ErrInvalidObjectType
	}

	typeID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.ObjectType{}, err
	}
	saved, err := u.Repository.SaveObjectType(ctx, entities.ObjectType{
		TypeID:    typeID,
		CompanyID: actor.CompanyID,
		Name:      name,
		Template:  template.Clone(),
		CreatedBy: actor.UserID,
		CreatedAt: u.Clock.Now().UTC(),
	})
	if err != nil {
		return entities.ObjectType{}, err
	}
	if saved.TypeID == typeID {
		application.ResolveLogger(u.Logger).Info("object type registered",
			"event", "object_type_registered",
			"module", "crm-catalog/object-service",
			"layer", "application",
			"type_name", saved.Name,
			"company_id", saved.CompanyID,
		)
	}
	return saved, nil
}
