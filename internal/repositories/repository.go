package repositories

import "context"

// Repository aggregates every repository the course service uses
type Repository interface {
	// Identity
	User() UserRepository

	// Catalog
	Course() CourseRepository
	Module() ModuleRepository
	Lesson() LessonRepository
	Assignment() AssignmentRepository

	// Student activity
	Submission() SubmissionRepository
	Enrollment() EnrollmentRepository
	Completion() CompletionRepository

	// Aggregations
	Dashboard() DashboardRepository

	// WithTransaction runs fn against repositories bound to a single transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
