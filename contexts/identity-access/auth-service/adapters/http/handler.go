package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"atlas/contexts/identity-access/auth-service/application/commands"
	"atlas/contexts/identity-access/auth-service/application/queries"
	"atlas/contexts/identity-access/auth-service/domain/entities"
	domainerrors "atlas/contexts/identity-access/auth-service/domain/errors"
	transport "atlas/contexts/identity-access/auth-service/transport/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Handler adapts HTTP DTOs to application use cases.
type Handler struct {
	Register     commands.RegisterUseCase
	Login        commands.LoginUseCase
	Logout       commands.LogoutUseCase
	Authenticate queries.AuthenticateUseCase
	CurrentUser  queries.CurrentUserUseCase
	Logger       *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req transport.RegisterRequest) (transport.SessionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.SessionResponse{}, fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	result, err := h.Register.Execute(ctx, commands.RegisterCommand{
		Username:    req.Username,
		Password:    req.Password,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return transport.SessionResponse{}, err
	}
	return transport.SessionResponse{
		User:      toUserResponse(result.User),
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
	}, nil
}

func (h Handler) LoginHandler(ctx context.Context, req transport.LoginRequest) (transport.SessionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return transport.SessionResponse{}, domainerrors.ErrInvalidCredentials
	}
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return transport.SessionResponse{}, err
	}
	return transport.SessionResponse{
		User:      toUserResponse(result.User),
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
	}, nil
}

func (h Handler) LogoutHandler(ctx context.Context, token string) error {
	return h.Logout.Execute(ctx, token)
}

// AuthenticateHandler resolves a session cookie token for the middleware.
func (h Handler) AuthenticateHandler(ctx context.Context, token string) (transport.AuthenticatedUser, error) {
	user, err := h.Authenticate.Execute(ctx, token)
	if err != nil {
		return transport.AuthenticatedUser{}, err
	}
	return transport.AuthenticatedUser{
		ID:        user.UserID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
	}, nil
}

func (h Handler) CurrentUserHandler(ctx context.Context, userID string) (transport.UserResponse, error) {
	user, err := h.CurrentUser.Execute(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user entities.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        user.UserID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		CreatedAt: user.CreatedAt,
	}
}
