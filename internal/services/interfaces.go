package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use business validator types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type CreateModuleRequest = validator.ModuleRequest
type UpdateModuleRequest = validator.ModuleUpdateRequest
type CreateLessonRequest = validator.LessonRequest
type UpdateLessonRequest = validator.LessonUpdateRequest
type CreateAssignmentRequest = validator.AssignmentRequest
type UpdateAssignmentRequest = validator.AssignmentUpdateRequest
type SubmitAssignmentRequest = validator.SubmissionRequest
type GradeSubmissionRequest = validator.GradeRequest
type EnrollRequest = validator.EnrollRequest
type UnenrollRequest = validator.UnenrollRequest

// FileUpload is an uploaded multipart file handed to a service.
type FileUpload struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// ===== RESPONSE DTOs =====

type CourseStudentsResponse struct {
	Course   models.CourseView    `json:"course"`
	Students []models.UserSummary `json:"students"`
}

type AssignmentResponse struct {
	ID            uint       `json:"id"`
	ModuleID      uint       `json:"module_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       *time.Time `json:"due_date"`
	AttachmentURL string     `json:"attachment_url"`
	LinkURL       string     `json:"link_url"`
}

func newAssignmentResponse(a *models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:            a.ID,
		ModuleID:      a.ModuleID,
		Title:         a.Title,
		Description:   a.Description,
		DueDate:       a.DueDate,
		AttachmentURL: a.AttachmentURL,
		LinkURL:       a.LinkURL,
	}
}

type MySubmissionResponse struct {
	Submitted  bool                   `json:"submitted"`
	Submission *models.SubmissionView `json:"submission,omitempty"`
}

// StudentCourse is an enrolled course with the student's progress.
type StudentCourse struct {
	models.CourseView
	Progress      float64    `json:"progress"`
	Deadline      *time.Time `json:"deadline"`
	NextTaskTitle *string    `json:"next_task_title,omitempty"`
}

type TimelineItem struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	CourseID    uint           `json:"course_id"`
	CourseTitle string         `json:"course_title"`
	ModuleTitle string         `json:"module_title"`
	DueDate     time.Time      `json:"due_date"`
	Status      TimelineStatus `json:"status"`
	DaysLeft    int            `json:"days_left"`
}

type DashboardResponse struct {
	InstructorName string            `json:"instructor_name"`
	Courses        []DashboardCourse `json:"courses"`
}

type DashboardCourse struct {
	ID       uint              `json:"id"`
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Price    float64           `json:"price"`
	Modules  []DashboardModule `json:"modules"`
}

type DashboardModule struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Assignments []DashboardAssignment `json:"assignments"`
}

type DashboardAssignment struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	DueDate           *time.Time `json:"due_date"`
	NeedsGradingCount int64      `json:"needs_grading_count"`
}

// DownloadResponse streams a proxied media object. Callers close Body.
type DownloadResponse struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Filename      string
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.UserSummary, error)
	Login(ctx context.Context, req *LoginRequest) (*models.UserSummary, error)
	GetByID(ctx context.Context, id uint) (*models.UserSummary, error)
	List(ctx context.Context, filters repositories.UserFilters) ([]models.UserSummary, int64, error)
}

type CourseService interface {
	List(ctx context.Context, search string) ([]models.CourseView, error)
	GetByID(ctx context.Context, id uint) (*models.CourseView, error)
	Create(ctx context.Context, req *CreateCourseRequest, thumbnail *FileUpload) (*models.CourseView, error)
	Update(ctx context.Context, id uint, req *UpdateCourseRequest, thumbnail *FileUpload) (*models.CourseView, error)
	Delete(ctx context.Context, id uint) error
	ListByInstructor(ctx context.Context, instructorID uint) ([]models.CourseView, error)
	ListStudents(ctx context.Context, courseID uint) (*CourseStudentsResponse, error)
}

type ModuleService interface {
	ListByCourse(ctx context.Context, courseID uint) ([]models.ModuleView, error)
	Create(ctx context.Context, courseID uint, req *CreateModuleRequest) (*models.ModuleView, error)
	Update(ctx context.Context, id uint, req *UpdateModuleRequest) (*models.ModuleView, error)
	Delete(ctx context.Context, id uint) error
}

type LessonService interface {
	ListByModule(ctx context.Context, moduleID uint) ([]models.LessonSummary, error)
	// GetByID reports completion for studentID when it is non-zero.
	GetByID(ctx context.Context, id, studentID uint) (*models.LessonDetail, error)
	Create(ctx context.Context, moduleID uint, req *CreateLessonRequest, material *FileUpload) (*models.LessonSummary, error)
	Update(ctx context.Context, id uint, req *UpdateLessonRequest, material *FileUpload) (*models.LessonSummary, error)
	Delete(ctx context.Context, id uint) error
}

type AssignmentService interface {
	ListByModule(ctx context.Context, moduleID uint) ([]AssignmentResponse, error)
	GetByID(ctx context.Context, id uint) (*AssignmentResponse, error)
	Create(ctx context.Context, moduleID uint, req *CreateAssignmentRequest, attachment *FileUpload) (*AssignmentResponse, error)
	Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, attachment *FileUpload) (*AssignmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type SubmissionService interface {
	Submit(ctx context.Context, assignmentID uint, req *SubmitAssignmentRequest, file *FileUpload) (*models.SubmissionView, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]models.SubmissionView, error)
	GetMine(ctx context.Context, assignmentID, studentID uint) (*MySubmissionResponse, error)
	// ExportGradebook writes the assignment's submissions as an xlsx workbook.
	ExportGradebook(ctx context.Context, assignmentID uint, w io.Writer) error
}

type GradingService interface {
	Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest) (*models.SubmissionView, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest) error
	Unenroll(ctx context.Context, req *UnenrollRequest) error
	// CompleteLesson reports false when the lesson was already completed.
	CompleteLesson(ctx context.Context, lessonID, studentID uint) (bool, error)
}

type StudentService interface {
	ListCourses(ctx context.Context, studentID uint) ([]StudentCourse, error)
	Timeline(ctx context.Context, studentID uint) ([]TimelineItem, error)
}

type DashboardService interface {
	GetInstructorDashboard(ctx context.Context, instructorID uint) (*DashboardResponse, error)
}

type MediaService interface {
	// Upload stores a file in folder and returns its public URL.
	Upload(ctx context.Context, file *FileUpload, folder string, resourceType repositories.ResourceType) (string, error)
	// UploadThumbnail re-encodes images as WebP before uploading.
	UploadThumbnail(ctx context.Context, file *FileUpload) (string, error)
	// Download proxies a previously issued media URL through a signed URL.
	Download(ctx context.Context, rawURL string) (*DownloadResponse, error)
}

type ReminderService interface {
	// SendDeadlineReminders publishes one reminder per enrolled student
	// without a submission, for assignments due within the window.
	SendDeadlineReminders(ctx context.Context) (int, error)
}

// ServiceManager manages all services
type ServiceManager interface {
	User() UserService
	Course() CourseService
	Module() ModuleService
	Lesson() LessonService
	Assignment() AssignmentService
	Submission() SubmissionService
	Grading() GradingService
	Enrollment() EnrollmentService
	Student() StudentService
	Dashboard() DashboardService
	Media() MediaService
	Reminder() ReminderService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
