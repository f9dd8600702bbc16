package object

import (
	"log/slog"

	httpadapter "atlas/contexts/crm-catalog/object-service/adapters/http"
	"atlas/contexts/crm-catalog/object-service/adapters/memory"
	"atlas/contexts/crm-catalog/object-service/application/commands"
	"atlas/contexts/crm-catalog/object-service/application/queries"
	"atlas/contexts/crm-catalog/object-service/ports"
)

// Module is the object-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDs        ports.IDGenerator
	Logger     *slog.Logger
}

// NewModule wires catalog use cases and the transport handler.
func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			CreateObject: commands.CreateObjectUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDs:        deps.IDs,
				Logger:     deps.Logger,
			},
			UpdateObject: commands.UpdateObjectUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				Logger:     deps.Logger,
			},
			DeleteObject: commands.DeleteObjectUseCase{
				Repository: deps.Repository,
				Logger:     deps.Logger,
			},
			CreateRelation: commands.CreateRelationUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDs:        deps.IDs,
				Logger:     deps.Logger,
			},
			SaveObjectType: commands.SaveObjectTypeUseCase{
				Repository: deps.Repository,
				Clock:      deps.Clock,
				IDs:        deps.IDs,
				Logger:     deps.Logger,
			},
			GetObject:       queries.GetObjectUseCase{Repository: deps.Repository},
			ListObjects:     queries.ListObjectsUseCase{Repository: deps.Repository, Logger: deps.Logger},
			ListObjectTypes: queries.ListObjectTypesUseCase{Repository: deps.Repository},
			ListRelations:   queries.ListRelationsUseCase{Repository: deps.Repository},
			Logger:          deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDs:        store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
