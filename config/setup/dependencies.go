package setup

import (
	"context"
	"log/slog"

	"moxie/app"
	"moxie/config"
	"moxie/database"
)

// InitDatabase opens the configured database and wires the DAOs
func InitDatabase(ctx context.Context, dbURL string, createSchema bool, logger *slog.Logger) (*database.Provider, error) {
	provider, err := database.NewProvider(ctx, dbURL,
		database.WithCreateSchema(createSchema),
		database.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("database initialized", "db_url", provider.URL())
	return provider, nil
}

// InitApp initializes the application with all dependencies
func InitApp(provider *database.Provider, cfg *config.Config, logger *slog.Logger) *app.App {
	application := app.New(provider.Notes(), cfg, logger)
	logger.Info("application initialized with dependency injection")
	return application
}

// Shutdown releases the resources held by the application
func Shutdown(provider *database.Provider, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if provider != nil {
		if err := provider.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
