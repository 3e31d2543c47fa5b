package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type studentService struct {
	repo     repositories.Repository
	logger   *slog.Logger
	timeline TimelineConfig
	now      Clock
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, timeline TimelineConfig, clock Clock) StudentService {
	if clock == nil {
		clock = systemClock
	}
	return &studentService{repo: repo, logger: logger, timeline: timeline, now: clock}
}

// ===== ENROLLED COURSES =====

// ListCourses returns each enrolled course with the student's progress and
// the nearest upcoming deadline.
func (s *studentService) ListCourses(ctx context.Context, studentID uint) ([]StudentCourse, error) {
	courses, err := s.enrolledCourses(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []StudentCourse{}, nil
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	progress, err := s.repo.Dashboard().CourseProgress(ctx, studentID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get course progress: %w", err)
	}

	dated, err := s.repo.Assignment().ListDatedByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get deadlines: %w", err)
	}

	// dated is ordered by due date, so the first future one per course wins.
	now := s.now()
	nearest := make(map[uint]*models.Assignment, len(courses))
	for _, a := range dated {
		if a.Module == nil || a.DueDate == nil || !a.DueDate.After(now) {
			continue
		}
		if _, ok := nearest[a.Module.CourseID]; !ok {
			nearest[a.Module.CourseID] = a
		}
	}

	out := make([]StudentCourse, 0, len(courses))
	for _, c := range courses {
		item := StudentCourse{
			CourseView: models.NewCourseView(c),
			Progress:   ComputeProgress(progress[c.ID]),
		}
		if a, ok := nearest[c.ID]; ok {
			item.Deadline = a.DueDate
			title := a.Title
			item.NextTaskTitle = &title
		}
		out = append(out, item)
	}
	return out, nil
}

// ===== TIMELINE =====

func (s *studentService) Timeline(ctx context.Context, studentID uint) ([]TimelineItem, error) {
	courses, err := s.enrolledCourses(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return []TimelineItem{}, nil
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	dated, err := s.repo.Assignment().ListDatedByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list dated assignments: %w", err)
	}

	assignmentIDs := make([]uint, 0, len(dated))
	for _, a := range dated {
		assignmentIDs = append(assignmentIDs, a.ID)
	}
	submitted, err := s.repo.Submission().SubmittedAssignmentIDs(ctx, studentID, assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	now := s.now()
	items := make([]TimelineItem, 0, len(dated))
	for _, a := range dated {
		due := *a.DueDate
		daysLeft := s.timeline.DaysLeft(due, now)

		item := TimelineItem{
			ID:       a.ID,
			Title:    a.Title,
			DueDate:  due,
			DaysLeft: daysLeft,
			Status:   ClassifyTimeline(submitted[a.ID], due, now, daysLeft),
		}
		if a.Module != nil {
			item.ModuleTitle = a.Module.Title
			item.CourseID = a.Module.CourseID
			if a.Module.Course != nil {
				item.CourseTitle = a.Module.Course.Title
			}
		}
		items = append(items, item)
	}

	s.logger.Debug("Timeline built", "student_id", studentID, "items", len(items))
	return items, nil
}

func (s *studentService) enrolledCourses(ctx context.Context, studentID uint) ([]*models.Course, error) {
	exists, err := s.repo.User().ExistsByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	courses, err := s.repo.Enrollment().ListCoursesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	return courses, nil
}
