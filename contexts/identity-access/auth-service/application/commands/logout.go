package commands

import (
	"context"
	"log/slog"
	"strings"

	application "atlas/contexts/identity-access/auth-service/application"
	"atlas/contexts/identity-access/auth-service/ports"
)

// LogoutUseCase destroys the server-side session for a token.
type LogoutUseCase struct {
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// Execute is idempotent: deleting an unknown token is not an error.
func (u LogoutUseCase) Execute(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := u.Sessions.DeleteSession(ctx, token); err != nil {
		return err
	}
	application.ResolveLogger(u.Logger).Info("session destroyed",
		"event", "auth_logout_completed",
		"module", "identity-access/auth-service",
		"layer", "application",
	)
	return nil
}
