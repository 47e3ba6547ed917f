package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
)

// ReminderWorker notifies a team's active members about an upcoming schedule
// entry. Delivery is a structured log line for now; the member resolution and
// dedup are the part that matters.
type ReminderWorker struct {
	teams *team.Service
}

func NewReminderWorker(teams *team.Service) *ReminderWorker {
	return &ReminderWorker{teams: teams}
}

func (w *ReminderWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p queue.ScheduleRemindPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal remind payload: %v: %w", err, asynq.SkipRetry)
	}

	members, err := w.teams.ListMembers(ctx, p.TeamID, false)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			// team deleted after the reminder was queued
			return nil
		}
		return fmt.Errorf("resolve members: %w", err)
	}

	for _, m := range members {
		slog.Info("schedule reminder",
			"schedule_id", p.ScheduleID,
			"team_id", p.TeamID,
			"user_id", m.UserID,
			"starts_at", p.StartsAt,
		)
	}
	return nil
}
