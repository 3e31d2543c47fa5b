package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SAP-F-2025/course-service/internal/services"
)

const defaultRunTimeout = 4 * time.Minute

// DeadlineReminderJob runs the reminder sweep on a cron schedule.
type DeadlineReminderJob struct {
	cron       *cron.Cron
	reminders  services.ReminderService
	logger     *slog.Logger
	runTimeout time.Duration
}

// NewDeadlineReminderJob registers the sweep under schedule. Overlapping runs
// are skipped.
func NewDeadlineReminderJob(schedule string, reminders services.ReminderService, logger *slog.Logger) (*DeadlineReminderJob, error) {
	if logger == nil {
		logger = slog.Default()
	}

	job := &DeadlineReminderJob{
		reminders:  reminders,
		logger:     logger.With("job", "deadline_reminder"),
		runTimeout: defaultRunTimeout,
	}

	cronLogger := cron.VerbosePrintfLogger(slog.NewLogLogger(job.logger.Handler(), slog.LevelDebug))
	job.cron = cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	if _, err := job.cron.AddFunc(schedule, job.Run); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return job, nil
}

// Run performs one sweep.
func (j *DeadlineReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.runTimeout)
	defer cancel()

	start := time.Now()
	sent, err := j.reminders.SendDeadlineReminders(ctx)
	if err != nil {
		j.logger.Error("Deadline reminder sweep failed", "error", err)
		return
	}
	j.logger.Info("Deadline reminder sweep finished", "sent", sent, "duration_ms", time.Since(start).Milliseconds())
}

func (j *DeadlineReminderJob) Start() {
	j.cron.Start()
	j.logger.Info("Deadline reminder job started")
}

// Stop halts scheduling and waits for a running sweep or ctx.
func (j *DeadlineReminderJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
		j.logger.Warn("Deadline reminder job did not stop in time")
	}
}
