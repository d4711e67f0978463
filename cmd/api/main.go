package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"netbelge/internal/auth"
	"netbelge/internal/config"
	"netbelge/internal/database"
	"netbelge/internal/database/migration"
	handlers "netbelge/internal/http/handler"
	"netbelge/internal/http/middleware"
	"netbelge/internal/logging"
	tracing "netbelge/internal/otel"
	"netbelge/internal/repository/postgres"
	"netbelge/internal/service"
	"netbelge/internal/storage"
)

// @title						NetBelge API
// @version					1.0
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("AUTH_JWT_SECRET is required")
	}

	db, err := database.NewPostgres(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	objStore, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err), zap.String("driver", cfg.Storage.Driver))
	}

	rdb := database.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	departmentRepo := postgres.NewDepartmentPostgres(db)
	typeRepo := postgres.NewDocumentTypePostgres(db)
	sectionRepo := postgres.NewDocumentSectionPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	fileRepo := postgres.NewDocumentFilePostgres(db)
	actorRepo := postgres.NewActorPostgres(db)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)

	svc := handlers.Services{
		Auth:          service.NewAuthService(actorRepo, tokens, cfg.Auth.BcryptCost),
		Departments:   service.NewDepartmentService(departmentRepo, fileRepo, objStore, logger),
		DocumentTypes: service.NewDocumentTypeService(typeRepo, sectionRepo, departmentRepo, fileRepo, objStore, logger),
		Documents:     service.NewDocumentService(docRepo, typeRepo, departmentRepo, fileRepo, objStore, logger),
		Files:         service.NewDocumentFileService(fileRepo, docRepo, typeRepo, departmentRepo, objStore, cfg.Storage.PresignExpiry()),
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    100 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registerDocs(app, cfg.AppHost)

	handlers.RegisterRoutes(app, db, svc, handlers.Guards{
		RequireAuth: auth.NewMiddleware(tokens, actorRepo).Handle,
		LoginLimiter: middleware.RateLimit(rdb, middleware.RateLimitConfig{
			Name:        "login",
			MaxRequests: cfg.Auth.LoginRateLimit,
			Window:      cfg.Auth.LoginRateWindow(),
		}, logger),
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
