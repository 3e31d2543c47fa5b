package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
)

// ===== FILTERS =====

// CourseFilters narrows catalog queries
type CourseFilters struct {
	Search       string // case-insensitive match on title
	InstructorID *uint
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// ===== CATALOG =====

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	// GetByID preloads the instructor.
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	// Delete removes the course together with its modules and enrollments.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	// GetByID preloads lessons in display order.
	GetByID(ctx context.Context, id uint) (*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, id uint) error
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Module, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	// GetByID preloads the parent module.
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uint) error
	ListByModule(ctx context.Context, moduleID uint) ([]*models.Lesson, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	// GetByID preloads the parent module and course.
	GetByID(ctx context.Context, id uint) (*models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id uint) error
	ListByModule(ctx context.Context, moduleID uint) ([]*models.Assignment, error)

	// ListDatedByCourses returns assignments with a due date, earliest first,
	// with module and course preloaded.
	ListDatedByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error)
	// ListDueBetween returns assignments whose due date falls in (from, to].
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error)
}

// ===== STUDENT ACTIVITY =====

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	Update(ctx context.Context, submission *models.Submission) error

	// ListByAssignment preloads students, newest first.
	ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error)
	// GetLatest returns the most recent submission of a student for an assignment.
	GetLatest(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error)
	// SubmittedAssignmentIDs returns the subset of assignmentIDs the student has submitted to.
	SubmittedAssignmentIDs(ctx context.Context, studentID uint, assignmentIDs []uint) (map[uint]bool, error)
	// SubmitterIDs returns the students with at least one submission for the assignment.
	SubmitterIDs(ctx context.Context, assignmentID uint) (map[uint]bool, error)
}

type EnrollmentRepository interface {
	// CreateIfAbsent inserts the enrollment and reports false when the
	// (student, course) pair already existed.
	CreateIfAbsent(ctx context.Context, enrollment *models.Enrollment) (bool, error)
	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
	Delete(ctx context.Context, studentID, courseID uint) error

	ListCoursesByStudent(ctx context.Context, studentID uint) ([]*models.Course, error)
	ListStudentsByCourse(ctx context.Context, courseID uint) ([]*models.User, error)
}

type CompletionRepository interface {
	// CreateIfAbsent inserts the completion and reports false when the
	// (student, lesson) pair already existed.
	CreateIfAbsent(ctx context.Context, completion *models.LessonCompletion) (bool, error)
	Exists(ctx context.Context, studentID, lessonID uint) (bool, error)
}
