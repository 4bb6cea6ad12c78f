package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"urlmonitor/internal/config"
	"urlmonitor/internal/httpapi"
	"urlmonitor/internal/logging"
	"urlmonitor/internal/monitor"
	"urlmonitor/internal/probe"
	"urlmonitor/internal/repo"
	"urlmonitor/internal/repo/memory"
	"urlmonitor/internal/repo/postgres"
	"urlmonitor/internal/repo/sqlite"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store_init", zap.Error(err))
	}
	defer store.Close()

	checker := probe.NewHTTPChecker(cfg.ProbeTimeout)
	svc := monitor.NewService(checker, store, logger)
	api := httpapi.NewServer(logger, svc, store)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Router(httpapi.RouterOptions{
			AllowedOrigins:  cfg.AllowedOrigins,
			RateLimitPerMin: cfg.RateLimitPerMin,
			RateBurst:       cfg.RateBurst,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutdown_signal", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}
}

// openStore picks the backend from DATABASE_URL: a postgres DSN, a SQLite
// file path, or (when empty) the in-memory store.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.ResultStore, error) {
	switch {
	case cfg.DatabaseURL == "":
		logger.Info("store", zap.String("backend", "memory"))
		return memory.New(), nil
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"),
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		logger.Info("store", zap.String("backend", "postgres"))
		return postgres.New(ctx, cfg.DatabaseURL, logger)
	default:
		logger.Info("store", zap.String("backend", "sqlite"), zap.String("path", cfg.DatabaseURL))
		return sqlite.New(ctx, cfg.DatabaseURL)
	}
}
