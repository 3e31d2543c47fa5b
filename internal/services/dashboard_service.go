package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// ===== INSTRUCTOR DASHBOARD =====

// GetInstructorDashboard lists the instructor's courses, newest first, down
// to assignments, each with the number of submissions awaiting a grade.
func (s *dashboardService) GetInstructorDashboard(ctx context.Context, instructorID uint) (*DashboardResponse, error) {
	s.logger.Info("Getting instructor dashboard", "instructor_id", instructorID)

	instructor, err := s.repo.User().GetByID(ctx, instructorID)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound, "get instructor")
	}

	courses, err := s.repo.Dashboard().InstructorCourses(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get instructor courses: %w", err)
	}

	ungraded, err := s.repo.Dashboard().UngradedCounts(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ungraded counts: %w", err)
	}

	resp := &DashboardResponse{
		InstructorName: instructor.Name,
		Courses:        make([]DashboardCourse, 0, len(courses)),
	}

	for _, c := range courses {
		course := DashboardCourse{
			ID:       c.ID,
			Title:    c.Title,
			Category: c.Category,
			Price:    c.Price,
			Modules:  make([]DashboardModule, 0, len(c.Modules)),
		}
		for _, m := range c.Modules {
			module := DashboardModule{
				ID:          m.ID,
				Title:       m.Title,
				Assignments: make([]DashboardAssignment, 0, len(m.Assignments)),
			}
			for _, a := range m.Assignments {
				module.Assignments = append(module.Assignments, DashboardAssignment{
					ID:                a.ID,
					Title:             a.Title,
					DueDate:           a.DueDate,
					NeedsGradingCount: ungraded[a.ID],
				})
			}
			course.Modules = append(course.Modules, module)
		}
		resp.Courses = append(resp.Courses, course)
	}

	return resp, nil
}
