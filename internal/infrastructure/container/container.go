// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	appsubstitution "github.com/proteinempire/ingredients/internal/application/substitution"
	"github.com/proteinempire/ingredients/internal/domain/ingredient"
	"github.com/proteinempire/ingredients/internal/infrastructure/config"
	"github.com/proteinempire/ingredients/internal/infrastructure/http/server"
	"github.com/proteinempire/ingredients/internal/infrastructure/persistence/catalogfile"
	"github.com/proteinempire/ingredients/internal/infrastructure/persistence/memory"
	redisstore "github.com/proteinempire/ingredients/internal/infrastructure/persistence/redis"
	"github.com/proteinempire/ingredients/internal/ports/outbound"
	"github.com/proteinempire/ingredients/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	CatalogModule,
	SessionStoreModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// CatalogModule loads the ingredient catalog once at startup and shares the
// immutable result.
var CatalogModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*ingredient.Catalog, error) {
		repo := catalogfile.NewRepository(cfg.Catalog.Path, log)
		return repo.Load(context.Background())
	},
)

// SessionStoreModule provides the session repository selected by config
var SessionStoreModule = fx.Provide(
	func(cfg *config.Config, catalog *ingredient.Catalog, log *zap.Logger) (outbound.SessionRepository, error) {
		if cfg.Session.Store == "redis" {
			client, err := redisstore.NewClient(cfg, log)
			if err != nil {
				return nil, err
			}
			return redisstore.NewSessionRepository(client, catalog, cfg.Session.TTL, log), nil
		}

		log.Info("Using in-memory session store",
			zap.Duration("ttl", cfg.Session.TTL),
			zap.Duration("cleanup_interval", cfg.Session.CleanupInterval),
		)
		return memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval), nil
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	appsubstitution.NewService,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	sessions outbound.SessionRepository,
	server *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting ingredients service",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			// Start HTTP server
			go func() {
				if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down ingredients service")

			// Shutdown HTTP server
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			// Stop the in-memory store's cleanup goroutine
			if closer, ok := sessions.(*memory.SessionRepository); ok {
				closer.Close()
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
