package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "atlas/contexts/crm-catalog/object-service/application"
	"atlas/contexts/crm-catalog/object-service/domain/entities"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

// UpdateObjectCommand is a partial patch; nil pointers and nil Fields leave
// the corresponding parts untouched. Field entries merge by name.
type UpdateObjectCommand struct {
	ObjectID    string
	Name        *string
	Type        *string
	Description *string
	Fields      entities.Fields
}

type UpdateObjectUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u UpdateObjectUseCase) Execute(ctx context.Context, actor authctx.Context, cmd UpdateObjectCommand) (entities.Object, error) {
	if !actor.HasPermission(authctx.FlagUpdate) {
		application.ResolveLogger(u.Logger).Warn("object update denied",
			"event", "object_update_denied",
			"module", "crm-catalog/object-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"object_id", cmd.ObjectID,
		)
		return entities.Object{}, domainerrors.ErrPermissionDenied
	}

	// Fetch inside the actor's company; a foreign record reads as missing.
	object, err := u.Repository.GetObject(ctx, cmd.ObjectID, actor.CompanyID)
	if err != nil {
		return entities.Object{}, err
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Object{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidObject)
		}
		object.Name = name
	}
	if cmd.Type != nil {
		objectType := strings.TrimSpace(*cmd.Type)
		if objectType == "" {
			return entities.Object{}, fmt.Errorf("%w: type is required", domainerrors.ErrInvalidObject)
		}
		object.Type = objectType
	}
	if cmd.Description != nil {
		object.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Fields != nil {
		if object.Fields == nil {
			object.Fields = entities.Fields{}
		} else {
			object.Fields = object.Fields.Clone()
		}
		for name, value := range cmd.Fields {
			object.Fields[name] = value
		}
	}
	object.UpdatedAt = u.Clock.Now().UTC()

	if err := u.Repository.UpdateObject(ctx, object); err != nil {
		return entities.Object{}, err
	}

	application.ResolveLogger(u.Logger).Info("object updated",
		"event", "object_updated",
		"module", "crm-catalog/object-service",
		"layer", "application",
		"object_id", object.ObjectID,
		"company_id", object.CompanyID,
	)
	return object, nil
}
