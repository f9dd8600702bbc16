package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	object "atlas/contexts/crm-catalog/object-service"
	auth "atlas/contexts/identity-access/auth-service"
	authorization "atlas/contexts/identity-access/authorization-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "atlas/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	secureCookies bool
	auth          auth.Module
	authorization authorization.Module
	objects       object.Module
	httpServer    *http.Server
}

// Options carries transport-level settings that are not module wiring.
type Options struct {
	Addr          string
	SecureCookies bool
	Logger        *slog.Logger
}

func New(
	authModule auth.Module,
	authorizationModule authorization.Module,
	objectModule object.Module,
	opts Options,
) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		secureCookies: opts.SecureCookies,
		auth:          authModule,
		authorization: authorizationModule,
		objects:       objectModule,
	}
	s.registerRoutes()
	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}
	return s
}

// Handler exposes the routed mux for httptest harnesses.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/user", s.withAuth(s.handleCurrentUser))

	s.mux.HandleFunc("GET /api/roles", s.withAuth(s.handleListRoles))
	s.mux.HandleFunc("POST /api/users/{user_id}/roles", s.withAuth(s.handleAssignRole))
	s.mux.HandleFunc("GET /api/users", s.withAuth(s.handleListCompanyUsers))

	s.mux.HandleFunc("POST /api/objects", s.withAuth(s.handleCreateObject))
	s.mux.HandleFunc("GET /api/objects", s.withAuth(s.handleListObjects))
	s.mux.HandleFunc("GET /api/objects/{object_id}", s.withAuth(s.handleGetObject))
	s.mux.HandleFunc("PUT /api/objects/{object_id}", s.withAuth(s.handleUpdateObject))
	s.mux.HandleFunc("DELETE /api/objects/{object_id}", s.withAuth(s.handleDeleteObject))
	s.mux.HandleFunc("POST /api/objects/{object_id}/relations", s.withAuth(s.handleCreateRelation))
	s.mux.HandleFunc("GET /api/objects/{object_id}/relations", s.withAuth(s.handleListRelations))
	s.mux.HandleFunc("GET /api/object-types", s.withAuth(s.handleListObjectTypes))
	s.mux.HandleFunc("POST /api/object-types", s.withAuth(s.handleSaveObjectType))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
