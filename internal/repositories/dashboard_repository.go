package repositories

import (
	"context"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// DashboardRepository holds the aggregation queries behind the instructor
// dashboard and student progress views.
type DashboardRepository interface {
	// InstructorCourses loads the instructor's courses, newest first, with
	// modules and their assignments.
	InstructorCourses(ctx context.Context, instructorID uint) ([]*models.Course, error)

	// UngradedCounts counts submissions with no grade per assignment,
	// restricted to the instructor's courses.
	UngradedCounts(ctx context.Context, instructorID uint) (map[uint]int64, error)

	// CourseProgress returns per-course work item counts for a student.
	CourseProgress(ctx context.Context, studentID uint, courseIDs []uint) (map[uint]ProgressCounts, error)
}

// ProgressCounts is the raw material for a progress percentage.
type ProgressCounts struct {
	CourseID             uint
	TotalLessons         int64
	TotalAssignments     int64
	CompletedLessons     int64
	SubmittedAssignments int64
}

func (p ProgressCounts) Total() int64 {
	return p.TotalLessons + p.TotalAssignments
}

func (p ProgressCounts) Completed() int64 {
	return p.CompletedLessons + p.SubmittedAssignments
}

// UngradedCount is one row of the grouped ungraded query.
type UngradedCount struct {
	AssignmentID uint
	Count        int64
}
