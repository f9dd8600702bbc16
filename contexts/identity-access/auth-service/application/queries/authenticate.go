package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"
	"atlas/contexts/identity-access/auth-service/ports"
)

// AuthenticateUseCase resolves a session token to its user and renews the
// sliding expiry. Every authenticated request passes through here before any
// handler runs.
type AuthenticateUseCase struct {
	Repository ports.Repository
	Sessions   ports.SessionStore
	Clock      ports.Clock
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// Execute returns ErrSessionNotFound for missing and expired tokens alike.
func (u AuthenticateUseCase) Execute(ctx context.Context, token string) (entities.User, error) {
	if strings.TrimSpace(token) == "" {
		return entities.User{}, domainerrors.ErrSessionNotFound
	}

	now := u.Clock.Now().UTC()
	session, found, err := u.Sessions.GetSession(ctx, token, now)
	if err != nil {
		return entities.User{}, err
	}
	if !found || session.Expired(now) {
		return entities.User{}, domainerrors.ErrSessionNotFound
	}

	ttl := u.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := u.Sessions.ExtendSession(ctx, token, now.Add(ttl)); err != nil {
		return entities.User{}, err
	}

	user, err := u.Repository.GetUser(ctx, session.UserID)
	if err != nil {
		return entities.User{}, err
	}
	return user, nil
}
