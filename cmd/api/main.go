package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homestay/internal/api"
	"homestay/internal/auth"
	"homestay/internal/config"
	"homestay/internal/database"
	"homestay/internal/domain"
	"homestay/internal/events"
	"homestay/internal/logging"
	"homestay/internal/metrics"
	"homestay/internal/notify"
	"homestay/internal/repository"
	"homestay/internal/service"
	"homestay/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, cfg, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := initRedis(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	store := initSessionStore(ctx, redisClient, &logger)

	bus := events.NewEventBus()
	initNotifications(ctx, cfg, bus, redisClient, &logger)

	backup := database.NewBackupService(db, cfg.Backup, logging.Component(&logger, "backup"))
	go backup.Start(ctx)

	startMetrics(ctx, cfg, &logger)

	srv := api.NewServer(api.Deps{
		Config:    cfg,
		Repo:      db,
		Sessions:  auth.NewSessions(store, cfg.Session),
		Auth:      service.NewAuthService(db, store, bus, cfg.Auth, logging.Component(&logger, "auth")),
		Contact:   service.NewContactService(db, bus, logging.Component(&logger, "contact")),
		Dashboard: service.NewDashboardService(db),
		Events:    bus,
		Backup:    backup,
		DB:        db,
		Logger:    logging.Component(&logger, "http"),
	})
	go srv.StartLimiterJanitor(ctx, 5*time.Minute)
	httpServer := api.NewHTTPServer(cfg.HTTP, srv.Routes(), &logger)

	return serve(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logging.Component(logger, "database"))
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	if !cfg.Seed.Enabled {
		return db, nil
	}
	data, err := database.LoadSeedFile(cfg.Seed.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("seed_path", cfg.Seed.Path).Msg("seed file missing, skipping")
			return db, nil
		}
		db.Close()
		return nil, err
	}
	n, err := db.Seed(ctx, data)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed database: %w", err)
	}
	if n > 0 {
		logger.Info().Int("rows", n).Msg("database seeded")
	}
	return db, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

// initSessionStore prefers redis with an in-memory fallback.
func initSessionStore(ctx context.Context, client *redis.Client, logger *zerolog.Logger) domain.SessionStore {
	memory := repository.NewMemorySessionStore()
	go memory.StartJanitor(ctx, 5*time.Minute)

	if client == nil {
		logger.Info().Msg("using in-memory session store")
		return memory
	}
	return repository.NewFailoverSessionStore(
		repository.NewRedisSessionStore(client),
		memory,
		logging.Component(logger, "sessions"),
	)
}

func initNotifications(
	ctx context.Context,
	cfg *config.Config,
	bus *events.EventBus,
	redisClient *redis.Client,
	logger *zerolog.Logger,
) {
	bot, err := notify.NewBot(cfg.Telegram)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, notifications disabled")
		return
	}
	if bot == nil {
		return
	}

	notifyLogger := logging.Component(logger, "notify")
	notifier := notify.NewTelegramNotifier(bot, cfg.Telegram.ChatIDs, notifyLogger)
	w := worker.NewNotificationWorker(notifier.Deliver, redisClient, worker.RetryPolicy{}, notifyLogger)
	notifier.Subscribe(ctx, bus, w)
	go w.Start(ctx)

	logger.Info().Str("bot", bot.Self.UserName).Int("chats", len(cfg.Telegram.ChatIDs)).Msg("telegram notifications enabled")
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info().Int("http_port", cfg.HTTP.Port).Msg("API server started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
