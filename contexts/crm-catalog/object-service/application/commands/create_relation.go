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

type CreateRelationCommand struct {
	SourceID string
	TargetID string
	Label    string
}

type CreateRelationUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

func (u CreateRelationUseCase) Execute(ctx context.Context, actor authctx.Context, cmd CreateRelationCommand) (entities.ObjectRelation, error) {
	if !actor.HasPermission(authctx.FlagCreate) {
		return entities.ObjectRelation{}, domainerrors.ErrPermissionDenied
	}

	label := strings.TrimSpace(cmd.Label)
	if label == "" {
		return entities.ObjectRelation{}, fmt.Errorf("%w: label is required", domainerrors.ErrInvalidRelation)
	}
	if cmd.SourceID == cmd.TargetID {
		return entities.ObjectRelation{}, fmt.Errorf("%w: source and target must differ", domainerrors.ErrInvalidRelation)
	}

	// Both endpoints must resolve inside the actor's company; an endpoint
	// in another tenant reads as missing.
	if _, err := u.Repository.GetObject(ctx, cmd.SourceID, actor.CompanyID); err != nil {
		return entities.ObjectRelation{}, err
	}
	if _, err := u.Repository.GetObject(ctx, cmd.TargetID, actor.CompanyID); err != nil {
		return entities.ObjectRelation{}, err
	}

	relationID, err := u.IDs.NewID(ctx)
	if err != nil {
		return entities.ObjectRelation{}, err
	}
	relation := entities.ObjectRelation{
		RelationID: relationID,
		CompanyID:  actor.CompanyID,
		SourceID:   cmd.SourceID,
		TargetID:   cmd.TargetID,
		Label:      label,
		CreatedBy:  actor.UserID,
		CreatedAt:  u.Clock.Now().UTC(),
	}
	if err := u.Repository.CreateRelation(ctx, relation); err != nil {
		return entities.ObjectRelation{}, err
	}

	application.ResolveLogger(u.Logger).Info("relation created",
		"event", "object_relation_created",
		"module", "crm-catalog/object-service",
		"layer", "application",
		"relation_id", relation.RelationID,
		"source_id", relation.SourceID,
		"target_id", relation.TargetID,
	)
	return relation, nil
}
