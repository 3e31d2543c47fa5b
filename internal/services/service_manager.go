package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// Service-specific configurations
	Course   ServiceConfig
	Reminder ServiceConfig

	Timeline       TimelineConfig
	ReminderWindow time.Duration

	// Global settings
	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled      bool
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ServiceDependencies are the shared collaborators handed to every service.
// Media may be nil when no media delegate is configured.
type ServiceDependencies struct {
	Repo      repositories.Repository
	Cache     *cache.CacheManager
	Publisher events.EventPublisher
	Media     repositories.MediaRepository
	Logger    *slog.Logger
	Validator *validator.Validator
	Clock     Clock
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	deps   ServiceDependencies
	config ServiceManagerConfig

	// Service instances
	userService       UserService
	courseService     CourseService
	moduleService     ModuleService
	lessonService     LessonService
	assignmentService AssignmentService
	submissionService SubmissionService
	gradingService    GradingService
	enrollmentService EnrollmentService
	studentService    StudentService
	dashboardService  DashboardService
	mediaService      MediaService
	reminderService   ReminderService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(deps ServiceDependencies, config ServiceManagerConfig) ServiceManager {
	if deps.Clock == nil {
		deps.Clock = systemClock
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	return &serviceManager{deps: deps, config: config}
}

// DefaultServiceManagerConfig enables every service with a short catalog cache.
func DefaultServiceManagerConfig() ServiceManagerConfig {
	return ServiceManagerConfig{
		Course: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		Reminder: ServiceConfig{
			Enabled: true,
		},
		Timeline:       TimelineConfig{Location: time.UTC},
		ReminderWindow: defaultReminderWindow,
		DefaultTimeout: 30 * time.Second,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.config.Validate(); err != nil {
		return err
	}
	if sm.deps.Repo == nil {
		return fmt.Errorf("failed to initialize services: repository is required")
	}

	sm.deps.Logger.Info("Initializing service manager")
	sm.initializeServices()

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) initializeServices() {
	d := sm.deps

	sm.mediaService = NewMediaService(d.Media, d.Logger)
	if d.Media == nil {
		d.Logger.Warn("Media delegate not configured; uploads and downloads are disabled")
	}

	sm.userService = NewUserService(d.Repo, d.Logger, d.Validator)
	sm.courseService = NewCourseService(d.Repo, d.Cache, sm.mediaService, d.Logger, d.Validator, sm.config.Course)
	sm.moduleService = NewModuleService(d.Repo, d.Logger, d.Validator)
	sm.lessonService = NewLessonService(d.Repo, sm.mediaService, d.Logger, d.Validator)
	sm.assignmentService = NewAssignmentService(d.Repo, sm.mediaService, d.Logger, d.Validator)
	sm.submissionService = NewSubmissionService(d.Repo, sm.mediaService, d.Publisher, d.Logger, d.Validator)
	sm.gradingService = NewGradingService(d.Repo, d.Publisher, d.Logger, d.Clock)
	sm.enrollmentService = NewEnrollmentService(d.Repo, d.Publisher, d.Logger, d.Validator)
	sm.studentService = NewStudentService(d.Repo, d.Logger, sm.config.Timeline, d.Clock)
	sm.dashboardService = NewDashboardService(d.Repo, d.Logger)

	if sm.config.Reminder.Enabled {
		sm.reminderService = NewReminderService(d.Repo, d.Publisher, d.Logger, sm.config.ReminderWindow, d.Clock)
		d.Logger.Info("Reminder service initialized", "window", sm.config.ReminderWindow)
	}
}

// Service getters

func (sm *serviceManager) get(name string, svc interface{}) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if svc == nil {
		panic(name + " service not enabled or not initialized")
	}
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("user", sm.userService)
	return sm.userService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("course", sm.courseService)
	return sm.courseService
}

func (sm *serviceManager) Module() ModuleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("module", sm.moduleService)
	return sm.moduleService
}

func (sm *serviceManager) Lesson() LessonService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("lesson", sm.lessonService)
	return sm.lessonService
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("assignment", sm.assignmentService)
	return sm.assignmentService
}

func (sm *serviceManager) Submission() SubmissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("submission", sm.submissionService)
	return sm.submissionService
}

func (sm *serviceManager) Grading() GradingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("grading", sm.gradingService)
	return sm.gradingService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("enrollment", sm.enrollmentService)
	return sm.enrollmentService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("student", sm.studentService)
	return sm.studentService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("dashboard", sm.dashboardService)
	return sm.dashboardService
}

func (sm *serviceManager) Media() MediaService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("media", sm.mediaService)
	return sm.mediaService
}

func (sm *serviceManager) Reminder() ReminderService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.get("reminder", sm.reminderService)
	return sm.reminderService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}
	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")
	return nil
}

// ===== CONFIGURATION VALIDATION =====

// Validate validates the service manager configuration
func (config *ServiceManagerConfig) Validate() error {
	if config.DefaultTimeout < 0 {
		return fmt.Errorf("configuration validation failed: default timeout cannot be negative")
	}
	if config.ReminderWindow < 0 {
		return fmt.Errorf("configuration validation failed: reminder window cannot be negative")
	}
	if config.Course.CacheTTL < 0 {
		return fmt.Errorf("configuration validation failed: course: cache TTL cannot be negative")
	}
	return nil
}
