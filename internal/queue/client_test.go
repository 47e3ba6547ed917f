package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

type fakeEnqueuer struct {
	calls *[]string
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	*f.calls = append(*f.calls, "enqueue")
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{}, f.err
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeRemover struct {
	calls   *[]string
	deleted []string
	err     error
}

func (f *fakeRemover) DeleteTask(queue, id string) error {
	*f.calls = append(*f.calls, "delete")
	f.deleted = append(f.deleted, queue+"/"+id)
	return f.err
}

func (f *fakeRemover) Close() error { return nil }

func newClientFakes(removeErr error) (*Client, *fakeEnqueuer, *fakeRemover, *[]string) {
	calls := &[]string{}
	enq := &fakeEnqueuer{calls: calls}
	rem := &fakeRemover{calls: calls, err: removeErr}
	return &Client{inner: enq, inspector: rem}, enq, rem, calls
}

func optValue(opts []asynq.Option, typ asynq.OptionType) (any, bool) {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value(), true
		}
	}
	return nil, false
}

// A reschedule must replace the pending reminder, not collide with it.
func TestEnqueueScheduleReminder_DropsPendingFirst(t *testing.T) {
	c, enq, rem, calls := newClientFakes(nil)

	c.EnqueueScheduleReminder(&models.TeamSchedule{
		ID:          5,
		TeamID:      2,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})

	assert.Equal(t, []string{"delete", "enqueue"}, *calls)
	assert.Equal(t, []string{"default/remind:5"}, rem.deleted)

	require.Len(t, enq.opts, 1)
	id, ok := optValue(enq.opts[0], asynq.TaskIDOpt)
	require.True(t, ok)
	assert.Equal(t, "remind:5", id)

	_, deferred := optValue(enq.opts[0], asynq.ProcessAtOpt)
	assert.True(t, deferred, "start outside the lead window should be deferred")
}

func TestEnqueueScheduleReminder_NoPendingTask(t *testing.T) {
	c, enq, _, _ := newClientFakes(asynq.ErrTaskNotFound)

	c.EnqueueScheduleReminder(&models.TeamSchedule{
		ID:          9,
		TeamID:      2,
		ScheduledAt: time.Now().Add(time.Hour),
	})

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeScheduleRemind, enq.tasks[0].Type())

	_, deferred := optValue(enq.opts[0], asynq.ProcessAtOpt)
	assert.False(t, deferred, "start inside the lead window fires immediately")
}

func TestEnqueueScheduleReminder_RemoveFailureStillEnqueues(t *testing.T) {
	c, enq, _, calls := newClientFakes(errors.New("redis down"))

	c.EnqueueScheduleReminder(&models.TeamSchedule{
		ID:          3,
		TeamID:      1,
		ScheduledAt: time.Now().Add(time.Hour),
	})

	assert.Equal(t, []string{"delete", "enqueue"}, *calls)
	require.Len(t, enq.tasks, 1)
}
