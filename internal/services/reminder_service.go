package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

const defaultReminderWindow = 24 * time.Hour

type reminderService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	window    time.Duration
	now       Clock

	mu sync.Mutex
	// reminded maps an assignment to the due date it was last reminded for.
	reminded map[uint]time.Time
}

func NewReminderService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, window time.Duration, clock Clock) ReminderService {
	if window <= 0 {
		window = defaultReminderWindow
	}
	if clock == nil {
		clock = systemClock
	}
	return &reminderService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		window:    window,
		now:       clock,
		reminded:  make(map[uint]time.Time),
	}
}

// SendDeadlineReminders scans (now, now+window] and reminds each assignment
// once per due date. An assignment is recorded as soon as its reminders are
// out, so a sweep that fails halfway does not repeat them on the next run.
func (s *reminderService) SendDeadlineReminders(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, due := range s.reminded {
		if !due.After(now) {
			delete(s.reminded, id)
		}
	}

	assignments, err := s.repo.Assignment().ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, fmt.Errorf("failed to list assignments due soon: %w", err)
	}

	sent := 0
	for _, a := range assignments {
		if a.Module == nil || a.DueDate == nil {
			continue
		}
		if due, ok := s.reminded[a.ID]; ok && due.Equal(*a.DueDate) {
			continue
		}
		courseID := a.Module.CourseID

		students, err := s.repo.Enrollment().ListStudentsByCourse(ctx, courseID)
		if err != nil {
			return sent, fmt.Errorf("failed to list students of course %d: %w", courseID, err)
		}
		submitters, err := s.repo.Submission().SubmitterIDs(ctx, a.ID)
		if err != nil {
			return sent, fmt.Errorf("failed to list submitters of assignment %d: %w", a.ID, err)
		}

		var courseTitle string
		if a.Module.Course != nil {
			courseTitle = a.Module.Course.Title
		}

		for _, student := range students {
			if submitters[student.ID] {
				continue
			}
			publishEvent(ctx, s.publisher, s.logger, events.DeadlineApproaching, events.DeadlineEvent{
				AssignmentID: a.ID,
				Title:        a.Title,
				CourseID:     courseID,
				CourseTitle:  courseTitle,
				StudentID:    student.ID,
				DueDate:      *a.DueDate,
			})
			sent++
		}
		s.reminded[a.ID] = *a.DueDate
	}

	s.logger.Info("Deadline reminders sent", "assignments", len(assignments), "reminders", sent)
	return sent, nil
}
