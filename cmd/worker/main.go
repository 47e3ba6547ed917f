package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/config"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue/workers"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("worker exited", "error", err)
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

	resolver := team.NewPermissionResolver(pool, nil)
	teams := team.NewService(pool, resolver)
	auditSvc := audit.NewService(pool)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeScheduleRemind, workers.NewReminderWorker(teams))
	mux.Handle(queue.TypeAuditPrune, workers.NewPruneWorker(auditSvc, cfg.Audit.Retention))

	// nightly retention sweep
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("0 3 * * *", queue.NewAuditPruneTask()); err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Shutdown()

	if err := srv.Start(mux); err != nil {
		return err
	}

	<-ctx.Done()
	slog.Info("shutting down worker")
	srv.Shutdown()
	return nil
}
