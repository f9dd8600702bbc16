package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	object "atlas/contexts/crm-catalog/object-service"
	objectpostgres "atlas/contexts/crm-catalog/object-service/adapters/postgres"
	auth "atlas/contexts/identity-access/auth-service"
	authmemory "atlas/contexts/identity-access/auth-service/adapters/memory"
	authpostgres "atlas/contexts/identity-access/auth-service/adapters/postgres"
	"atlas/contexts/identity-access/auth-service/adapters/security"
	authentities "atlas/contexts/identity-access/auth-service/domain/entities"
	authorization "atlas/contexts/identity-access/authorization-service"
	authzpostgres "atlas/contexts/identity-access/authorization-service/adapters/postgres"
	authzports "atlas/contexts/identity-access/authorization-service/ports"
	"atlas/internal/platform/config"
	"atlas/internal/platform/db"
	"atlas/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN, db.Options{PingTimeout: cfg.DBPingTimeout})
	if err != nil {
		return nil, err
	}

	// Authorization first: the auth module binds roles through its registry
	// during registration.
	authzRepo := authzpostgres.NewRepository(pg.DB, logger)
	authzModule := authorization.NewModule(authorization.Dependencies{
		Repository: authzRepo,
		Users:      authzRepo,
		Clock:      authzpostgres.SystemClock{},
		IDs:        authzpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	authRepo := authpostgres.NewRepository(pg.DB, logger)
	authModule := auth.NewModule(auth.Dependencies{
		Repository: authRepo,
		Sessions:   authRepo,
		Hasher:     security.NewArgon2Hasher(security.DefaultArgon2Params()),
		Roles:      authzModule.Registry,
		Clock:      authpostgres.SystemClock{},
		IDs:        authpostgres.UUIDGenerator{},
		Tokens:     authpostgres.SessionTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	})

	objectRepo := objectpostgres.NewRepository(pg.DB, logger)
	objectModule := object.NewModule(object.Dependencies{
		Repository: objectRepo,
		Clock:      objectpostgres.SystemClock{},
		IDs:        objectpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	server := httpserver.New(authModule, authzModule, objectModule, httpserver.Options{
		Addr:          normalizeAddr(cfg.HTTPPort),
		SecureCookies: cfg.SecureCookies,
		Logger:        logger,
	})
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// MemoryAPI is a fully wired in-memory application for tests and local runs
// without a database.
type MemoryAPI struct {
	Server        *httpserver.Server
	Auth          auth.Module
	Authorization authorization.Module
	Objects       object.Module
}

// BuildMemoryAPI wires the three modules over in-memory adapters. The auth
// repository is wrapped so new users mirror into the authorization
// directory; in postgres wiring the directory reads the users table instead.
func BuildMemoryAPI(logger *slog.Logger) MemoryAPI {
	if logger == nil {
		logger = slog.Default()
	}

	authzModule := authorization.NewInMemoryModule(logger)

	authStore := authmemory.NewStore()
	authModule := auth.NewModule(auth.Dependencies{
		Repository: identityMirror{Store: authStore, directory: authzModule.Store},
		Sessions:   authStore,
		Hasher:     security.NewArgon2Hasher(security.DefaultArgon2Params()),
		Roles:      authzModule.Registry,
		Clock:      authStore,
		IDs:        authStore,
		Tokens:     authStore,
		SessionTTL: 24 * time.Hour,
		Logger:     logger,
	})
	authModule.Store = authStore

	objectModule := object.NewInMemoryModule(logger)

	server := httpserver.New(authModule, authzModule, objectModule, httpserver.Options{
		Addr:   ":0",
		Logger: logger,
	})
	return MemoryAPI{
		Server:        server,
		Auth:          authModule,
		Authorization: authzModule,
		Objects:       objectModule,
	}
}

// identityMirror forwards auth repository calls to the in-memory store and
// mirrors created users into the authorization directory.
type identityMirror struct {
	*authmemory.Store
	directory interface {
		PutUser(record authzports.UserRecord)
	}
}

func (m identityMirror) CreateUser(ctx context.Context, user authentities.User) error {
	if err := m.Store.CreateUser(ctx, user); err != nil {
		return err
	}
	m.directory.PutUser(authzports.UserRecord{
		UserID:    user.UserID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		CreatedAt: user.CreatedAt,
	})
	return nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
