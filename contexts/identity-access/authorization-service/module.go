package authorization

import (
	"log/slog"

	httpadapter "atlas/contexts/identity-access/authorization-service/adapters/http"
	"atlas/contexts/identity-access/authorization-service/adapters/memory"
	"atlas/contexts/identity-access/authorization-service/application"
	"atlas/contexts/identity-access/authorization-service/application/commands"
	"atlas/contexts/identity-access/authorization-service/application/queries"
	"atlas/contexts/identity-access/authorization-service/ports"
)

// Module is the authorization-service composition root exposed to runtime
// wiring. Registry is exported so the auth service can bind roles during
// registration without an HTTP round trip.
type Module struct {
	Handler  httpadapter.Handler
	Registry application.RegistryService
	Store    *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.RoleRepository
	Users      ports.UserDirectory
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

// NewModule wires authorization use cases and the transport handler.
func NewModule(deps Dependencies) Module {
	registry := application.RegistryService{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDs:        deps.IDs,
		Logger:     deps.Logger,
	}
	assignRole := commands.AssignRoleUseCase{
		Registry: registry,
		Users:    deps.Users,
		Logger:   deps.Logger,
	}
	listRoles := queries.ListRolesUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listCompanyUsers := queries.ListCompanyUsersUseCase{
		Repository: deps.Repository,
		Users:      deps.Users,
		Logger:     deps.Logger,
	}
	resolveContext := queries.ResolveAuthContextUseCase{
		Repository: deps.Repository,
	}

	return Module{
		Handler: httpadapter.Handler{
			AssignRole:       assignRole,
			ListRoles:        listRoles,
			ListCompanyUsers: listCompanyUsers,
			ResolveContext:   resolveContext,
			Logger:           deps.Logger,
		},
		Registry: registry,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Users:      store,
		Clock:      store,
		IDs:        store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
