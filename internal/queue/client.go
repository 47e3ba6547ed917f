package queue

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

type enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type taskRemover interface {
	DeleteTask(queue, id string) error
	Close() error
}

// Client enqueues background work. Enqueue failures are logged and swallowed
// so the API path never fails because redis is down.
type Client struct {
	inner     enqueuer
	inspector taskRemover
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	opt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	}
	return &Client{inner: asynq.NewClient(opt), inspector: asynq.NewInspector(opt)}
}

func (c *Client) Close() error {
	err := c.inner.Close()
	if ierr := c.inspector.Close(); err == nil {
		err = ierr
	}
	return err
}

// reminders fire a day before the scheduled start
const reminderLead = 24 * time.Hour

func reminderTaskID(scheduleID int64) string {
	return fmt.Sprintf("remind:%d", scheduleID)
}

// EnqueueScheduleReminder schedules a reminder task for a schedule entry. A
// start inside the lead window gets the reminder immediately. Rescheduling
// drops any pending reminder first, otherwise the shared task ID would keep
// the stale time.
func (c *Client) EnqueueScheduleReminder(s *models.TeamSchedule) {
	task, err := NewScheduleRemindTask(ScheduleRemindPayload{
		ScheduleID: s.ID,
		TeamID:     s.TeamID,
		StartsAt:   s.ScheduledAt,
	})
	if err != nil {
		slog.Error("build reminder task", "schedule_id", s.ID, "error", err)
		return
	}

	id := reminderTaskID(s.ID)
	if err := c.inspector.DeleteTask("default", id); err != nil &&
		!errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		slog.Warn("drop pending reminder", "schedule_id", s.ID, "error", err)
	}

	opts := []asynq.Option{asynq.TaskID(id)}
	if at := s.ScheduledAt.Add(-reminderLead); time.Now().Before(at) {
		opts = append(opts, asynq.ProcessAt(at))
	}

	if _, err := c.inner.Enqueue(task, opts...); err != nil {
		slog.Error("enqueue reminder", "schedule_id", s.ID, "error", err)
	}
}

// EnqueueAuditPrune queues one retention sweep of the audit trail.
func (c *Client) EnqueueAuditPrune() {
	if _, err := c.inner.Enqueue(NewAuditPruneTask()); err != nil {
		slog.Error("enqueue audit prune", "error", err)
	}
}
