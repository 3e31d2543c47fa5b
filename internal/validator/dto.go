package validator

import "github.com/SAP-F-2025/course-service/internal/models"

// ===== IDENTITY =====

// RegisterRequest represents the request structure for creating accounts
type RegisterRequest struct {
	Name     string          `json:"name" form:"name" validate:"required,not_blank,max=100"`
	Email    string          `json:"email" form:"email" validate:"required,email,max=255"`
	Password string          `json:"password" form:"password" validate:"required,max=72"`
	Role     models.UserRole `json:"role" form:"role" validate:"omitempty,user_role"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ===== CATALOG =====

// CourseCreateRequest represents the request structure for creating courses.
// Thumbnails arrive as a separate multipart file.
type CourseCreateRequest struct {
	Title         string    `json:"title" form:"title" validate:"required,not_blank,max=200"`
	Description   string    `json:"description" form:"description" validate:"max=10000"`
	Category      string    `json:"category" form:"category" validate:"max=100"`
	Price         FlexFloat `json:"price" form:"price" validate:"gte=0"`
	InstructorID  FlexID    `json:"instructor_id" form:"instructor_id"`
	EnrollmentKey *string   `json:"enrollment_key" form:"enrollment_key" validate:"omitempty,max=100"`
	ThumbnailURL  string    `json:"thumbnail_url" form:"thumbnail_url" validate:"omitempty,url"`
}

// CourseUpdateRequest only touches the fields that are present.
type CourseUpdateRequest struct {
	Title         *string        `json:"title" form:"title" validate:"omitempty,not_blank,max=200"`
	Description   *string        `json:"description" form:"description" validate:"omitempty,max=10000"`
	Category      *string        `json:"category" form:"category" validate:"omitempty,max=100"`
	Price         *FlexFloat     `json:"price" form:"price" validate:"omitempty,gte=0"`
	EnrollmentKey OptionalString `json:"enrollment_key" form:"enrollment_key"`
}

type ModuleRequest struct {
	Title     string  `json:"title" form:"title" validate:"required,not_blank,max=200"`
	SortOrder FlexInt `json:"sort_order" form:"sort_order"`
}

type ModuleUpdateRequest struct {
	Title     *string  `json:"title" form:"title" validate:"omitempty,not_blank,max=200"`
	SortOrder *FlexInt `json:"sort_order" form:"sort_order"`
}

// LessonRequest covers creation; a file_material upload replaces VideoURL.
type LessonRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,not_blank,max=200"`
	ContentText string   `json:"content_text" form:"content_text"`
	VideoURL    string   `json:"video_url" form:"video_url"`
	SortOrder   FlexInt  `json:"sort_order" form:"sort_order"`
	IsPreview   FlexBool `json:"is_preview" form:"is_preview"`
}

// LessonUpdateRequest ignores empty strings, matching the form editor which
// always posts every field.
type LessonUpdateRequest struct {
	Title       string    `json:"title" form:"title" validate:"omitempty,max=200"`
	ContentText string    `json:"content_text" form:"content_text"`
	VideoURL    string    `json:"video_url" form:"video_url"`
	SortOrder   *FlexInt  `json:"sort_order" form:"sort_order"`
	IsPreview   *FlexBool `json:"is_preview" form:"is_preview"`
}

type AssignmentRequest struct {
	Title       string         `json:"title" form:"title" validate:"required,not_blank,max=200"`
	Description string         `json:"description" form:"description"`
	LinkURL     string         `json:"link_url" form:"link_url"`
	DueDate     OptionalString `json:"due_date" form:"due_date"`
}

type AssignmentUpdateRequest struct {
	Title       string         `json:"title" form:"title" validate:"omitempty,max=200"`
	Description string         `json:"description" form:"description"`
	LinkURL     OptionalString `json:"link_url" form:"link_url"`
	DueDate     OptionalString `json:"due_date" form:"due_date"`
}

// ===== STUDENT ACTIVITY =====

type SubmissionRequest struct {
	StudentID      FlexID `json:"student_id" form:"student_id" validate:"required"`
	SubmissionLink string `json:"submission_link" form:"submission_link" validate:"max=2048"`
}

// GradeRequest keeps the raw grade; an empty string or JSON null clears it.
type GradeRequest struct {
	Grade    RawValue `json:"grade" form:"grade"`
	Feedback *string  `json:"feedback" form:"feedback"`
}

type EnrollRequest struct {
	StudentID     FlexID  `json:"student_id" form:"student_id" validate:"required"`
	CourseID      FlexID  `json:"course_id" form:"course_id" validate:"required"`
	EnrollmentKey *string `json:"enrollment_key" form:"enrollment_key"`
}

// UnenrollRequest accepts user_id as an alias of student_id.
type UnenrollRequest struct {
	StudentID FlexID `json:"student_id" form:"student_id"`
	UserID    FlexID `json:"user_id" form:"user_id"`
	CourseID  FlexID `json:"course_id" form:"course_id"`
}

func (r UnenrollRequest) Student() uint {
	if r.StudentID != 0 {
		return r.StudentID.Uint()
	}
	return r.UserID.Uint()
}

type CompleteLessonRequest struct {
	StudentID FlexID `json:"student_id" form:"student_id" validate:"required"`
}
