package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/upwatch/watchtower/internal/config"
	"github.com/upwatch/watchtower/internal/engine"
	"github.com/upwatch/watchtower/internal/httpapi"
	"github.com/upwatch/watchtower/internal/httpapi/middleware"
	"github.com/upwatch/watchtower/internal/lock"
	"github.com/upwatch/watchtower/internal/logging"
	"github.com/upwatch/watchtower/internal/notify"
	"github.com/upwatch/watchtower/internal/repo"
	"github.com/upwatch/watchtower/internal/repo/memory"
	"github.com/upwatch/watchtower/internal/repo/postgres"
	"github.com/upwatch/watchtower/internal/stats"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		monitors repo.MonitorStore
		checks   repo.CheckStore
		users    repo.UserStore
	)
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("postgres_connect_error", zap.Error(err))
		}
		defer pg.Close()
		monitors, checks, users = pg, pg, pg
		logger.Info("store_postgres")
	} else {
		mem := memory.New()
		monitors, checks, users = mem, mem, mem
		logger.Info("store_memory")
	}

	var lease lock.Lease
	if cfg.RedisURL != "" {
		host, _ := os.Hostname()
		rl, err := lock.NewRedis(cfg.RedisURL, host)
		if err != nil {
			logger.Fatal("redis_connect_error", zap.Error(err))
		}
		defer rl.Close()
		lease = rl
		logger.Info("lease_redis")
	} else {
		lease = lock.NewMemory()
	}

	dispatcher := notify.NewDispatcher(users, logger)
	runner := engine.NewRunner(monitors, checks, dispatcher, lease, logger)

	scheduler := engine.NewScheduler(runner, monitors, logger)
	scheduler.Interval = cfg.TickInterval
	scheduler.WarmUp = cfg.WarmUpDelay
	scheduler.Concurrency = cfg.Concurrency
	if err := scheduler.Start(ctx); err != nil {
		logger.Fatal("scheduler_start_error", zap.Error(err))
	}

	api := httpapi.NewServer(logger, monitors, stats.NewService(checks), scheduler, runner, middleware.Keys{
		Public: cfg.PublicAPIKeys,
		Admin:  cfg.AdminAPIKeys,
	})
	srv := &http.Server{Addr: cfg.Addr, Handler: api.Router()}

	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("api_serve_error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting_down")

	scheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}
}
