package main

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/google/uuid"

	"yt-summarizer/config"
	"yt-summarizer/handlers"
	"yt-summarizer/logger"
	"yt-summarizer/ollama"
	"yt-summarizer/repository/sqlite"
	"yt-summarizer/services/summary"
	"yt-summarizer/services/video"
	"yt-summarizer/validation"
	"yt-summarizer/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, logOut, err := logger.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.Database.Path, cfg.Database.MaxConnections)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	videoRepo := sqlite.NewVideoRepository(db)
	promptRepo := sqlite.NewPromptRepository(db)

	validator := validation.NewValidator()
	ytClient := youtube.NewClient(cfg.YouTube, appLog)
	ollamaClient := ollama.NewClient(cfg.Ollama, appLog)

	videoService := video.NewService(videoRepo, ytClient, validator, appLog)
	summaryService := summary.NewService(videoService, ollamaClient, videoRepo, summary.Config{
		DefaultModel: cfg.Ollama.DefaultModel,
		ChunkWords:   cfg.Summary.ChunkWords,
	}, appLog)

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.NewErrorHandler(appLog),
		DisableStartupMessage: !cfg.Debug,
		AppName:               "yt-summarizer " + cfg.Version,
	})

	setupMiddleware(app, cfg, logOut)
	setupRoutes(app, cfg, db, videoService, summaryService, promptRepo)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		appLog.Info("Shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			appLog.WithError(err).Error("Server shutdown error")
		}
	}()

	addr := ":" + cfg.ServerPort
	appLog.WithField("addr", addr).Info("Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupMiddleware(app *fiber.App, cfg *config.Config, logOut io.Writer) {
	if cfg.Middleware.EnableRecover {
		app.Use(recover.New(recover.Config{
			EnableStackTrace: cfg.Debug,
		}))
	}

	if cfg.Middleware.EnableRequestID {
		app.Use(requestid.New(requestid.Config{
			Header: "X-Request-ID",
			Generator: func() string {
				return uuid.New().String()
			},
		}))
	}

	if cfg.Middleware.EnableLogger {
		app.Use(fiberLogger.New(logger.FiberConfig(logOut)))
	}

	if cfg.Middleware.EnableTimeout {
		app.Use(timeout.New(func(c *fiber.Ctx) error {
			return c.Next()
		}, cfg.RequestTimeout))
	}

	if cfg.Middleware.EnableCORS {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
			AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
			AllowHeaders:     strings.Join(cfg.CORS.AllowedHeaders, ","),
			ExposeHeaders:    strings.Join(cfg.CORS.ExposedHeaders, ","),
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.Middleware.EnableRateLimit && cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}

	if cfg.Middleware.EnableCompress {
		app.Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))
	}

	if cfg.Middleware.EnableETag {
		app.Use(etag.New())
	}
}

func setupRoutes(
	app *fiber.App,
	cfg *config.Config,
	db *sql.DB,
	videoService video.Service,
	summaryService summary.Service,
	promptRepo *sqlite.PromptRepository,
) {
	videoHandler := handlers.NewVideoHandler(videoService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	promptHandler := handlers.NewPromptHandler(promptRepo)
	healthHandler := handlers.NewHealthHandler(db, cfg.Version)

	app.Post("/api/transcript", videoHandler.Transcript)
	app.Post("/api/summary", summaryHandler.Summarize)
	app.Get("/api/models", summaryHandler.Models)

	app.Get("/api/videos/:id", videoHandler.Get)
	app.Get("/api/videos/:id/transcript/download", videoHandler.DownloadTranscript)
	app.Get("/api/videos/:id/summary/download", videoHandler.DownloadSummary)

	app.Get("/api/prompt", promptHandler.Get)
	app.Put("/api/prompt", promptHandler.Save)
	app.Delete("/api/prompt", promptHandler.Reset)

	app.Get("/health", healthHandler.Check)

	app.Static("/", "./static")
}
