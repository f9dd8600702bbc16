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

// CreateObjectCommand carries the caller-supplied record content. Ownership
// fields never appear here; they come from the actor.
type CreateObjectCommand struct {
	Name        string
	Type        string
	Description string
	Fields      entities.Fields
}

type CreateObjectUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

func (u CreateObjectUseCase) Execute(ctx context.Context, actor authctx.Context, cmd CreateObjectCommand) (entities.Object, error) {
	if !actor.HasPermission(authctx.FlagCreate) {
		application.ResolveLogger(u.Logger).Warn("object create denied",
			"event", "object_create_denied",
			"module", "crm-catalog/object-service",
			"layer", "application",
			"actor_id", actor.UserID,
		)
		return entities.Object{}, domainerrors.ErrPermissionDenied
	}

	name := strings.TrimSpace(cmd.Name)
	objectType := strings.TrimSpace(cmd.Type)
	if name == "" {
		return entities.Object{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidObject)
	}
	if objectType == "" {
		return entities.Object{}, fmt.Errorf("%w: type is required", domainerrors.ErrInvalidObject)
	}

	objectID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.Object{}, err
	}
	now := u.Clock.Now().UTC()
	object := entities.Object{
		ObjectID:    objectID,
		CompanyID:   actor.CompanyID,
		Name:        name,
		Type:        objectType,
		Description: strings.TrimSpace(cmd.Description),
		Fields:      cmd.Fields.Clone(),
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Repository.CreateObject(ctx, object); err != nil {
		return entities.Object{}, err
	}

	application.ResolveLogger(u.Logger).Info("object created",
		"event", "object_created",
		"module", "crm-catalog/object-service",
		"layer", "application",
		"object_id", object.ObjectID,
		"object_type", object.Type,
		"company_id", object.CompanyID,
	)
	return object, nil
}
