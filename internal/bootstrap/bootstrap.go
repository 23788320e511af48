// Package bootstrap builds the application's dependency graph: config,
// logging, database, redis, outbound clients and the HTTP stack. All wiring
// lives here; nothing below this package reaches for globals.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/altan/schoolhub/docs" // generated swagger docs
	"github.com/altan/schoolhub/internal/aibridge"
	appControllers "github.com/altan/schoolhub/internal/app/controllers"
	appMigrations "github.com/altan/schoolhub/internal/app/migrations"
	appRepos "github.com/altan/schoolhub/internal/app/repositories"
	appRoutes "github.com/altan/schoolhub/internal/app/routes"
	appServices "github.com/altan/schoolhub/internal/app/services"
	"github.com/altan/schoolhub/internal/cache"
	"github.com/altan/schoolhub/internal/config"
	"github.com/altan/schoolhub/internal/db"
	appMiddleware "github.com/altan/schoolhub/internal/middleware"
	pkgAuth "github.com/altan/schoolhub/internal/pkg/auth"
	"github.com/altan/schoolhub/internal/pkg/helpers"
	"github.com/altan/schoolhub/internal/pkg/logger"
	"github.com/altan/schoolhub/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers *appControllers.Controllers
	Middleware  *appMiddleware.AuthMiddleware
	JWTService  *pkgAuth.JWTService
	Cache       *cache.Client
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	pool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(pool)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), pool); err != nil {
		logger.Warn().Err(err).Msg("Seeding default data failed")
	}

	return pool, nil
}

// SetupCache connects to redis.
func SetupCache(cfg *config.Config) (*cache.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewClient(ctx, cache.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		AICacheTTL: helpers.ParseDuration(cfg.AI.CacheTTL, 5*time.Minute),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool, cacheClient *cache.Client) (*Dependencies, error) {
	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	aiClient := aibridge.NewClient(aibridge.Config{
		BaseURL:       cfg.AI.BaseURL,
		Timeout:       helpers.ParseDuration(cfg.AI.Timeout, 30*time.Second),
		RetryAttempts: cfg.AI.RetryAttempts,
		RetryDelay:    helpers.ParseDuration(cfg.AI.RetryDelay, time.Second),
	})

	repos := appRepos.NewRepositories(pool)
	services := appServices.NewServices(repos, jwtService, cacheClient, aiClient)
	controllers := appControllers.NewControllers(services)
	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService, cacheClient)

	return &Dependencies{
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Middleware:  authMiddleware,
		JWTService:  jwtService,
		Cache:       cacheClient,
	}, nil
}

// SetupRouter creates the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.Middleware)

	return router
}
