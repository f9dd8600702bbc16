package commands

import (
	"context"
	"log/slog"

	application "atlas/contexts/crm-catalog/object-service/application"
	domainerrors "atlas/contexts/crm-catalog/object-service/domain/errors"
	"atlas/contexts/crm-catalog/object-service/ports"
	"atlas/internal/shared/authctx"
)

type DeleteObjectUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u DeleteObjectUseCase) Execute(ctx context.Context, actor authctx.Context, objectID string) error {
	if !actor.HasPermission(authctx.FlagDelete) {
		application.ResolveLogger(u.Logger).Warn("object delete denied",
			"event", "object_delete_denied",
			"module", "crm-catalog/object-service",
			"layer", "application",
			"actor_id", actor.UserID,
			"object_id", objectID,
		)
		return domainerrors.ErrPermissionDenied
	}

	// Existence check keeps delete idempotency honest: deleting a foreign
	// or missing record reports not-found, not success.
	if _, err := u.Repository.GetObject(ctx, objectID, actor.CompanyID); err != nil {
		return err
	}
	if err := u.Repository.DeleteObject(ctx, objectID, actor.CompanyID); err != nil {
		return err
	}

	application.ResolveLogger(u.Logger).Info("object deleted",
		"event", "object_deleted",
		"module", "crm-catalog/object-service",
		"layer", "application",
		"object_id", objectID,
		"company_id", actor.CompanyID,
	)
	return nil
}
