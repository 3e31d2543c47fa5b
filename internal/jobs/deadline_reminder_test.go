package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReminders struct {
	calls atomic.Int32
	err   error
}

func (c *countingReminders) SendDeadlineReminders(ctx context.Context) (int, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep ran without a deadline")
	}
	return 2, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDeadlineReminderJob_RejectsBadSchedule(t *testing.T) {
	_, err := NewDeadlineReminderJob("every now and then", &countingReminders{}, discardLogger())
	assert.Error(t, err)
}

func TestDeadlineReminderJob_Run(t *testing.T) {
	reminders := &countingReminders{}
	job, err := NewDeadlineReminderJob("@every 1h", reminders, discardLogger())
	require.NoError(t, err)

	job.Run()
	assert.Equal(t, int32(1), reminders.calls.Load())

	reminders.err = errors.New("db down")
	assert.NotPanics(t, job.Run)
	assert.Equal(t, int32(2), reminders.calls.Load())
}

func TestDeadlineReminderJob_Schedules(t *testing.T) {
	reminders := &countingReminders{}
	job, err := NewDeadlineReminderJob("@every 1s", reminders, discardLogger())
	require.NoError(t, err)

	job.Start()
	assert.Eventually(t, func() bool { return reminders.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
