package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/analytics"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/api"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/cache"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/config"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	users := user.NewService(pool, hasher)
	tenants := tenant.NewService(pool)
	resolver := team.NewPermissionResolver(pool, cache.NewCache(rdb))
	teams := team.NewService(pool, resolver)
	auditSvc := audit.NewService(pool)
	analyticsSvc := analytics.NewService(pool)

	if err := users.EnsureAdmin(ctx); err != nil {
		return err
	}

	jobs := queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer jobs.Close()

	router := api.NewRouter(api.Deps{
		Config:    cfg,
		Pool:      pool,
		Redis:     rdb,
		Codec:     codec,
		Users:     users,
		Tenants:   tenants,
		Teams:     teams,
		Resolver:  resolver,
		Analytics: analyticsSvc,
		Audit:     auditSvc,
		Jobs:      jobs,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
