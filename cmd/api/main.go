package main

import (
	"context"
	"strings"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/YangSeungWon/pdf-history/docs"
	"github.com/YangSeungWon/pdf-history/internal/config"
	"github.com/YangSeungWon/pdf-history/internal/database"
	"github.com/YangSeungWon/pdf-history/internal/database/migration"
	"github.com/YangSeungWon/pdf-history/internal/extract"
	handlers "github.com/YangSeungWon/pdf-history/internal/http/handler"
	"github.com/YangSeungWon/pdf-history/internal/http/middleware"
	"github.com/YangSeungWon/pdf-history/internal/otel"
	"github.com/YangSeungWon/pdf-history/internal/repository/postgres"
	"github.com/YangSeungWon/pdf-history/internal/service"
	"github.com/YangSeungWon/pdf-history/internal/storage"
)

// @title PDF History API
// @version 1.0
// @BasePath /
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Initialize repositories and services
	revRepo := postgres.NewRevisionPostgres(db)
	extractor := extract.NewPdftotext(cfg.PdftotextBin)
	revSvc := service.NewRevisionService(objStore, revRepo, extractor, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.MaxUploadBytes,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register prometheus metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, revSvc, handlers.RouteConfig{
		APIKey:         cfg.APIKey,
		MaxUploadBytes: int64(cfg.MaxUploadBytes),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
