package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "atlas/contexts/identity-access/auth-service/application"
	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"
	"atlas/contexts/identity-access/auth-service/ports"
)

// LoginCommand contains transport-agnostic login input.
type LoginCommand struct {
	Username string
	Password string
}

// LoginResult carries the authenticated user and the new session.
type LoginResult struct {
	User    entities.User
	Session entities.Session
}

// LoginUseCase verifies credentials and establishes a session.
type LoginUseCase struct {
	Repository ports.Repository
	Sessions   ports.SessionStore
	Hasher     ports.PasswordHasher
	Clock      ports.Clock
	Tokens     ports.TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// Execute returns ErrInvalidCredentials for both unknown usernames and wrong
// passwords; no session is established on failure.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	logger := application.ResolveLogger(u.Logger)

	username := strings.TrimSpace(cmd.Username)
	if username == "" || cmd.Password == "" {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	user, found, err := u.Repository.GetUserByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, err
	}
	if !found || !u.Hasher.Verify(cmd.Password, user.PasswordHash) {
		logger.Warn("login rejected",
			"event", "auth_login_rejected",
			"module", "identity-access/auth-service",
			"layer", "application",
			"username", username,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	now := u.Clock.Now().UTC()
	session, err := startSession(ctx, u.Sessions, u.Tokens, user.UserID, now, u.SessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	logger.Info("login completed",
		"event", "auth_login_completed",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.UserID,
		"company_id", user.CompanyID,
	)

	return LoginResult{User: user, Session: session}, nil
}

func startSession(
	ctx context.Context,
	sessions ports.SessionStore,
	tokens ports.TokenGenerator,
	userID string,
	now time.Time,
	ttl time.Duration,
) (entities.Session, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := tokens.NewToken(ctx)
	if err != nil {
		return entities.Session{}, err
	}
	session := entities.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := sessions.CreateSession(ctx, session); err != nil {
		return entities.Session{}, err
	}
	return session, nil
}
