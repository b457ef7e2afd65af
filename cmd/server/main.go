package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"naomi/internal/bot"
	"naomi/internal/cache"
	"naomi/internal/chart"
	"naomi/internal/classify"
	"naomi/internal/config"
	"naomi/internal/db"
	"naomi/internal/handler"
	"naomi/internal/provider"
	"naomi/internal/repository"
	"naomi/internal/safety"
	"naomi/internal/service"
	"naomi/internal/session"
	"naomi/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "naomi/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newConversationRepo    = repository.NewConversationRepository
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Naomi API
// @version         1.0
// @description     Conversational crypto market assistant with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create repository and run migrations
	var pool repository.PgxPool
	if db.Pool != nil {
		pool = db.Pool
	}
	convRepo := newConversationRepo(pool, tracer)
	if db.Pool != nil {
		if err := convRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Create providers and the assistant
	timeout := time.Duration(cfg.ProviderTimeoutSecs) * time.Second
	cacheTTL := time.Duration(cfg.ProviderCacheSecs) * time.Second
	market := provider.NewCoinGeckoProvider(tracer, cache.Client, cfg.CoinGeckoAPIKey, timeout, cacheTTL, cfg.ProviderMaxRetries)
	smartMoney := provider.NewNansenProvider(tracer, cache.Client, cfg.NansenAPIKey, timeout, cacheTTL, cfg.ProviderMaxRetries)
	sentiment := provider.NewTwitterProvider(tracer, cache.Client, cfg.TwitterBearerToken, timeout, cacheTTL, cfg.ProviderMaxRetries)
	grok := provider.NewGrokClient(tracer, cfg.GrokAPIKey, cfg.GrokModel, cfg.GrokBaseURL)

	assistant := service.NewAssistantService(
		tracer,
		safety.NewFilter(nil),
		classify.NewClassifier(),
		session.NewStore(cfg.AssistantMaxHistory),
		convRepo,
		market,
		smartMoney,
		sentiment,
		grok,
		chart.NewRenderer(),
		cfg.AssistantMaxParallel,
	)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, assistant)

	// Create handlers and routes
	h := handler.New(tracer, assistant)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("naomi"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
