package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/insighthub/meeting-insights/pkg/validator"

	"github.com/insighthub/meeting-insights/internal/adapter/handler"
	"github.com/insighthub/meeting-insights/internal/adapter/repository"
	"github.com/insighthub/meeting-insights/internal/domain/repositories"
	"github.com/insighthub/meeting-insights/internal/infrastructure/cache"
	"github.com/insighthub/meeting-insights/internal/infrastructure/database"
	"github.com/insighthub/meeting-insights/internal/infrastructure/export"
	"github.com/insighthub/meeting-insights/internal/infrastructure/external/source"
	"github.com/insighthub/meeting-insights/internal/infrastructure/queue"
	"github.com/insighthub/meeting-insights/internal/infrastructure/search"
	aiuse "github.com/insighthub/meeting-insights/internal/usecase/ai"
	"github.com/insighthub/meeting-insights/internal/usecase/processing"
	"github.com/insighthub/meeting-insights/internal/usecase/transcripts"
	pkgai "github.com/insighthub/meeting-insights/pkg/ai"
	"github.com/insighthub/meeting-insights/pkg/config"
	"github.com/insighthub/meeting-insights/pkg/jwt"
	"github.com/insighthub/meeting-insights/pkg/metrics"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Transcript ingestion and AI enrichment pipeline for meeting transcripts

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		log.Println("🔄 Running migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run sql-migrate in CI/CD/production")
	}

	// Initialize transcript repository
	log.Println("⚙️  Initializing repositories...")
	transcriptRepo := repository.NewTranscriptRepository(db)

	// Initialize trigger queue (Redis, or in-memory when disabled)
	var triggerQueue repositories.ProcessingQueue
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		triggerQueue = queue.NewRedisQueue(redisClient, cfg.Processing.QueueName)
	} else {
		log.Println("⚠️  Redis disabled, using in-memory trigger queue")
		triggerQueue = queue.NewMemoryQueue(0)
	}

	// Initialize external collaborators
	log.Println("🔍 Initializing search index client...")
	var searchIndex repositories.SearchIndex
	if cfg.Search.Enabled {
		searchIndex = search.NewClient(&cfg.Search)
	} else {
		log.Println("⚠️  Search indexing disabled")
	}

	log.Println("📊 Initializing analytics exporter...")
	var exporter repositories.AnalyticsExporter
	if cfg.Export.Enabled {
		exporter, err = export.NewMinIOExporter(&cfg.Export)
		if err != nil {
			log.Fatalf("Failed to initialize analytics exporter: %v", err)
		}
	} else {
		log.Println("⚠️  Analytics export disabled")
	}

	log.Println("📡 Initializing transcript source...")
	transcriptSource := source.NewClient(&cfg.Source, logger)

	// Initialize AI enrichment
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	enricher := aiuse.NewEnricher(groqClient, logger)

	// Initialize metrics
	pipelineMetrics := metrics.Default()

	// Initialize services
	log.Println("✨ Initializing transcript service...")
	transcriptService := transcripts.NewService(transcriptRepo, searchIndex, cfg, logger)

	log.Println("⚙️  Initializing processing orchestrator...")
	orchestrator := processing.NewOrchestrator(
		transcriptRepo,
		transcriptSource,
		enricher,
		searchIndex,
		exporter,
		cfg,
		pipelineMetrics,
		logger,
	)

	// Start scheduler and queue consumers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	scheduler := processing.NewScheduler(orchestrator, cfg.Processing.BatchInterval, cfg.Processing.RunBatchOnBoot, logger)
	scheduler.Start(workerCtx)
	defer scheduler.Stop()

	consumer := processing.NewConsumer(orchestrator, triggerQueue, cfg.Processing.WorkerCount, logger)
	consumer.Start(workerCtx)
	defer consumer.Stop()

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, triggerQueue, pipelineMetrics, logger)
	botHandler := handler.NewBotHandler(transcriptService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, transcriptHandler, botHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	scheduler.Stop()
	consumer.Stop()
	cancelWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
