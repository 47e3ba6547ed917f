package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeScheduleRemind = "schedule:remind"
	TypeAuditPrune     = "audit:prune"
)

// ScheduleRemindPayload identifies a schedule entry whose team members should
// be reminded shortly before it starts.
type ScheduleRemindPayload struct {
	ScheduleID int64     `json:"schedule_id"`
	TeamID     int64     `json:"team_id"`
	StartsAt   time.Time `json:"starts_at"`
}

func NewScheduleRemindTask(p ScheduleRemindPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal remind payload: %w", err)
	}
	return asynq.NewTask(TypeScheduleRemind, payload, asynq.MaxRetry(3)), nil
}

func NewAuditPruneTask() *asynq.Task {
	return asynq.NewTask(TypeAuditPrune, nil, asynq.MaxRetry(1), asynq.Queue("low"))
}
