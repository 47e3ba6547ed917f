package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
)

// PruneWorker sweeps expired audit entries.
type PruneWorker struct {
	audit     *audit.Service
	retention time.Duration
}

func NewPruneWorker(audit *audit.Service, retention time.Duration) *PruneWorker {
	return &PruneWorker{audit: audit, retention: retention}
}

func (w *PruneWorker) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	deleted, err := w.audit.Prune(ctx, w.retention)
	if err != nil {
		return err
	}
	slog.Info("audit logs pruned", "deleted", deleted, "retention", w.retention)
	return nil
}
