package auth

import (
	"log/slog"
	"time"

	httpadapter "atlas/contexts/identity-access/auth-service/adapters/http"
	"atlas/contexts/identity-access/auth-service/adapters/memory"
	"atlas/contexts/identity-access/auth-service/adapters/security"
	"atlas/contexts/identity-access/auth-service/application/commands"
	"atlas/contexts/identity-access/auth-service/application/queries"
	"atlas/contexts/identity-access/auth-service/ports"
)

// Module is the auth-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Sessions   ports.SessionStore
	Hasher     ports.PasswordHasher
	Roles      ports.RoleRegistry
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Tokens     ports.TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// NewModule wires identity use cases and the transport handler.
func NewModule(deps Dependencies) Module {
	register := commands.RegisterUseCase{
		Repository: deps.Repository,
		Sessions:   deps.Sessions,
		Hasher:     deps.Hasher,
		Roles:      deps.Roles,
		Clock:      deps.Clock,
		IDs:        deps.IDs,
		Tokens:     deps.Tokens,
		SessionTTL: deps.SessionTTL,
		Logger:     deps.Logger,
	}
	login := commands.LoginUseCase{
		Repository: deps.Repository,
		Sessions:   deps.Sessions,
		Hasher:     deps.Hasher,
		Clock:      deps.Clock,
		Tokens:     deps.Tokens,
		SessionTTL: deps.SessionTTL,
		Logger:     deps.Logger,
	}
	logout := commands.LogoutUseCase{
		Sessions: deps.Sessions,
		Logger:   deps.Logger,
	}
	authenticate := queries.AuthenticateUseCase{
		Repository: deps.Repository,
		Sessions:   deps.Sessions,
		Clock:      deps.Clock,
		SessionTTL: deps.SessionTTL,
		Logger:     deps.Logger,
	}
	currentUser := queries.CurrentUserUseCase{
		Repository: deps.Repository,
	}

	return Module{
		Handler: httpadapter.Handler{
			Register:     register,
			Login:        login,
			Logout:       logout,
			Authenticate: authenticate,
			CurrentUser:  currentUser,
			Logger:       deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The role registry crosses contexts, so the caller supplies it.
func NewInMemoryModule(roles ports.RoleRegistry, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Sessions:   store,
		Hasher:     security.NewArgon2Hasher(security.DefaultArgon2Params()),
		Roles:      roles,
		Clock:      store,
		IDs:        store,
		Tokens:     store,
		SessionTTL: 24 * time.Hour,
		Logger:     logger,
	})
	module.Store = store
	return module
}
