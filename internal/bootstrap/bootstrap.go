// Package bootstrap wires configuration, database, services and HTTP routing
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/slgoiko/unirhub/internal/app/controllers"
	appMigrations "github.com/slgoiko/unirhub/internal/app/migrations"
	appRepos "github.com/slgoiko/unirhub/internal/app/repositories"
	appRoutes "github.com/slgoiko/unirhub/internal/app/routes"
	appServices "github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/config"
	"github.com/slgoiko/unirhub/internal/db"
	appMiddleware "github.com/slgoiko/unirhub/internal/middleware"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	GoogleFlow *googleapi.Flow

	AuthService     *appServices.AuthService
	SubjectService  *appServices.SubjectService
	NoteService     *appServices.NoteService
	ResourceService *appServices.ResourceService
	ActivityService *appServices.ActivityService
	EventService    *appServices.EventService

	AuthController     *appControllers.AuthController
	SubjectController  *appControllers.SubjectController
	NoteController     *appControllers.NoteController
	ResourceController *appControllers.ResourceController
	ActivityController *appControllers.ActivityController
	EventController    *appControllers.EventController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	flow, err := googleapi.NewFlow(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize Google OAuth flow")
		return nil, fmt.Errorf("failed to initialize google flow: %w", err)
	}
	deps.GoogleFlow = flow

	deps.AuthService = appServices.NewAuthService(flow, deps.Repos.SessionRepository, cfg)
	deps.SubjectService = appServices.NewSubjectService(
		deps.Repos.SubjectRepository,
		deps.Repos.NoteRepository,
		deps.Repos.ResourceRepository,
		deps.Repos.ActivityRepository,
		deps.Repos.EventRepository,
	)
	deps.NoteService = appServices.NewNoteService(deps.Repos.NoteRepository, deps.Repos.SubjectRepository)
	deps.ResourceService = appServices.NewResourceService(deps.Repos.ResourceRepository, deps.Repos.SubjectRepository, flow)
	deps.ActivityService = appServices.NewActivityService(deps.Repos.ActivityRepository, deps.Repos.SubjectRepository, flow)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.SubjectRepository, flow)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Repos.SessionRepository, cfg.IsProduction())

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.AuthMiddleware, lgr)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService, lgr)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService, lgr)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, lgr)
	deps.ActivityController = appControllers.NewActivityController(deps.ActivityService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SubjectController,
		deps.NoteController,
		deps.ResourceController,
		deps.ActivityController,
		deps.EventController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
