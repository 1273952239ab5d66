package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekindev/coursesearch/internal/app/controllers"
	appMigrations "github.com/ekindev/coursesearch/internal/app/migrations"
	appRepos "github.com/ekindev/coursesearch/internal/app/repositories"
	appRoutes "github.com/ekindev/coursesearch/internal/app/routes"
	appServices "github.com/ekindev/coursesearch/internal/app/services"
	"github.com/ekindev/coursesearch/internal/config"
	"github.com/ekindev/coursesearch/internal/db"
	"github.com/ekindev/coursesearch/internal/pkg/embedding"
	"github.com/ekindev/coursesearch/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService   appServices.CatalogService
	IndexerService   appServices.IndexerService
	SearchService    appServices.SearchService
	IngestService    appServices.IngestService
	SearchController *appControllers.SearchController
	Repos            *appRepos.Repositories
	Embedder         embedding.Service
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, cfg.Embedder.Dimension)
	if err := migrator.Run(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes repositories, services, and controllers. The
// confirm capability gates destructive ingestion; the HTTP server passes a
// refusing one since the API surface is read-only.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger, confirm appServices.ConfirmFunc) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	embedder, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Dimension: cfg.Embedder.Dimension,
		Timeout:   cfg.EmbedderTimeout(),
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize embedding client")
		return nil, fmt.Errorf("failed to initialize embedding client: %w", err)
	}
	deps.Embedder = embedder

	deps.CatalogService = appServices.NewCatalogService(deps.Repos.CourseRepository, cfg.Catalog.DataRoot)
	deps.IndexerService = appServices.NewIndexerService(deps.Repos.CourseRepository, deps.Repos.EmbeddingRepository, deps.Embedder)
	deps.SearchService = appServices.NewSearchService(deps.Repos.EmbeddingRepository, deps.Embedder)
	deps.IngestService = appServices.NewIngestService(deps.CatalogService, deps.IndexerService, confirm)

	deps.SearchController = appControllers.NewSearchController(deps.SearchService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router, deps.SearchController)

	return router
}
