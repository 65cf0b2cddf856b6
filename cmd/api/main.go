package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/adapter"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/adapter/quizgen"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/adapter/research"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/cache"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/config"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/database"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/handler"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/logger"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/middleware"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/repository"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/retry"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/service"
	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/store"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

// buildModel constructs an LLM client for the named provider.
func buildModel(provider string, cfg config.LLMConfig) (llms.Model, error) {
	switch provider {
	case "openai":
		return openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.OpenAIModel),
		)
	case "ollama":
		httpClient := &http.Client{Timeout: cfg.Timeout}
		return ollama.New(
			ollama.WithServerURL(cfg.OllamaServerURL),
			ollama.WithModel(cfg.OllamaModel),
			ollama.WithHTTPClient(httpClient),
		)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM clients: a primary provider and an optional fallback.
	primaryModel, err := buildModel(cfg.LLM.Provider, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create primary LLM client", zap.Error(err))
	}
	if primaryModel == nil {
		appLogger.Fatal("No LLM provider configured; set llm.provider to openai or ollama")
	}
	fallbackModel, err := buildModel(cfg.LLM.FallbackProvider, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create fallback LLM client", zap.Error(err))
	}
	appLogger.Info("LLM clients initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("fallback", cfg.LLM.FallbackProvider))

	// Connect to the remote store of record
	remoteDB, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer remoteDB.Close()

	// Open the local durable cache
	localDB, err := database.NewSQLXSQLiteDB(cfg.LocalCache.Path)
	if err != nil {
		appLogger.Fatal("Failed to open local cache", zap.Error(err))
	}
	defer localDB.Close()

	localCache, err := repository.NewSQLiteLocalCache(localDB)
	if err != nil {
		appLogger.Fatal("Failed to initialize local cache schema", zap.Error(err))
	}

	// Initialize repositories
	statsRepository := repository.NewSQLXUserStatsRepository(remoteDB)
	eventRepository := repository.NewSQLXEventRepository(remoteDB)

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")

	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	remoteSync := adapter.NewRemoteSync(statsRepository, eventRepository, redisClient)

	// One store per active user, all sharing the same local/remote plumbing.
	retryCfg := retry.DefaultConfig()
	if cfg.Sync.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.Sync.MaxRetries
	}
	storeManager := store.NewManager(store.Options{
		Local:         localCache,
		Remote:        remoteSync,
		Logger:        appLogger,
		RemoteTimeout: cfg.Sync.RemoteTimeout,
		Retry:         retryCfg,
		EventWindow:   cfg.Sync.EventWindow,
	})

	// Initialize services
	sessionService, err := service.NewSessionService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create SessionService", zap.Error(err))
	}
	quizGenerator := quizgen.NewLLMQuizGenerator(primaryModel, fallbackModel)
	researchProvider := research.NewLLMResearchProvider(primaryModel)

	quizService := service.NewQuizService(quizGenerator, storeManager)
	researchService := service.NewResearchService(researchProvider, storeManager)
	progressService := service.NewProgressService(storeManager)
	leaderboardService := service.NewLeaderboardService(remoteSync, cacheAdapter)

	// Drop cached leaderboard pages as soon as any node announces a change.
	unsubscribeLeaderboard, err := remoteSync.SubscribeToLeaderboard(context.Background(), func() {
		leaderboardService.Invalidate(context.Background())
	})
	if err != nil {
		appLogger.Warn("Leaderboard invalidation subscription unavailable", zap.Error(err))
	} else {
		defer unsubscribeLeaderboard()
	}

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionService, storeManager)
	quizHandler := handler.NewQuizHandler(quizService)
	researchHandler := handler.NewResearchHandler(researchService)
	progressHandler := handler.NewProgressHandler(progressService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Session routes
	apiGroup.Post("/sessions", sessionHandler.CreateSession)

	protected := middleware.Protected(sessionService, storeManager)

	// Quiz routes
	apiGroup.Post("/quiz/generate", protected, quizHandler.GenerateQuiz)
	apiGroup.Post("/quiz/submit", protected, quizHandler.SubmitQuiz)

	// Research routes
	apiGroup.Post("/research/query", protected, researchHandler.Query)
	apiGroup.Post("/research/analyze", protected, researchHandler.Analyze)

	// Progress routes
	progressGroup := apiGroup.Group("/progress", protected)
	progressGroup.Get("/", progressHandler.GetStats)
	progressGroup.Get("/history", progressHandler.GetHistory)
	progressGroup.Get("/achievements", progressHandler.GetAchievements)
	progressGroup.Get("/sync", progressHandler.GetSyncStatus)
	progressGroup.Get("/stream", progressHandler.Stream)
	progressGroup.Delete("/", progressHandler.Reset)

	// Leaderboard
	apiGroup.Get("/leaderboard", protected, leaderboardHandler.GetLeaderboard)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	// Flush pending remote writes before the process exits.
	storeManager.CloseAll()
	appLogger.Info("Server exited gracefully")
}
