package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"naomi/internal/cache"
	"naomi/internal/chart"
	"naomi/internal/classify"
	"naomi/internal/config"
	"naomi/internal/db"
	"naomi/internal/provider"
	"naomi/internal/repository"
	"naomi/internal/safety"
	"naomi/internal/service"
	"naomi/internal/session"
	"naomi/internal/tui"
	"naomi/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc           = godotenv.Load
	loadConfigFunc        = config.Load
	initPostgresFunc      = db.InitPostgres
	initRedisFunc         = cache.InitRedis
	initTracerFunc        = tracing.InitTracer
	newConversationRepo   = repository.NewConversationRepository
	newTerminalUserRepo   = repository.NewTerminalUserRepository
	newSSHServerFunc      = wish.NewServer
	setupSignalNotify     = ossignal.Notify
	waitForSignalFunc     = func(quit <-chan os.Signal) { <-quit }
	startSSHServerFunc    = func(srv *ssh.Server) error { return srv.ListenAndServe() }
	shutdownSSHServerFunc = func(srv *ssh.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var pool repository.PgxPool
	if db.Pool != nil {
		pool = db.Pool
	}
	convRepo := newConversationRepo(pool, tracer)
	userRepo := newTerminalUserRepo(pool, tracer)
	if db.Pool != nil {
		if err := convRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		if err := userRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run terminal user migrations: %v", err)
		}
	}

	timeout := time.Duration(cfg.ProviderTimeoutSecs) * time.Second
	cacheTTL := time.Duration(cfg.ProviderCacheSecs) * time.Second
	assistant := service.NewAssistantService(
		tracer,
		safety.NewFilter(nil),
		classify.NewClassifier(),
		session.NewStore(cfg.AssistantMaxHistory),
		convRepo,
		provider.NewCoinGeckoProvider(tracer, cache.Client, cfg.CoinGeckoAPIKey, timeout, cacheTTL, cfg.ProviderMaxRetries),
		provider.NewNansenProvider(tracer, cache.Client, cfg.NansenAPIKey, timeout, cacheTTL, cfg.ProviderMaxRetries),
		provider.NewTwitterProvider(tracer, cache.Client, cfg.TwitterBearerToken, timeout, cacheTTL, cfg.ProviderMaxRetries),
		provider.NewGrokClient(tracer, cfg.GrokAPIKey, cfg.GrokModel, cfg.GrokBaseURL),
		chart.NewRenderer(),
		cfg.AssistantMaxParallel,
	)

	srv, err := newSSHServerFunc(
		wish.WithAddress(net.JoinHostPort(cfg.SSHBind, strconv.Itoa(cfg.SSHPort))),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		// Any key may connect; the fingerprint keys the conversation.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(assistant, userRepo)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	go func() {
		log.Printf("SSH chat listening on %s:%d", cfg.SSHBind, cfg.SSHPort)
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownSSHServerFunc(srv, shutdownCtx); err != nil {
		log.Printf("SSH server forced to shutdown: %v", err)
	}
}

func teaHandler(assistant *service.AssistantService, users *repository.TerminalUserRepository) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		username, keyType, fingerprint := identify(s)
		sessionID := "ssh:" + fingerprint

		if err := users.RecordLogin(s.Context(), username, keyType, fingerprint, sessionID); err != nil {
			log.Printf("failed to record login for %s: %v", fingerprint, err)
		}

		m := tui.NewAppModel(tui.Services{
			Assistant: assistant,
			Username:  username,
			SessionID: sessionID,
		})
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func identify(s ssh.Session) (username, keyType, fingerprint string) {
	username = s.User()
	if key := s.PublicKey(); key != nil {
		keyType = key.Type()
		fingerprint = gossh.FingerprintSHA256(key)
		return username, keyType, fingerprint
	}
	// No key means no durable identity; scope the session to this connection.
	return username, "none", fmt.Sprintf("anon-%s", s.RemoteAddr())
}
