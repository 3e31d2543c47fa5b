package models

import "time"

// ===== PUBLIC VIEWS =====

type UserSummary struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

func NewUserSummary(u *User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type CourseView struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Price          float64   `json:"price"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	InstructorID   *uint     `json:"instructor_id"`
	InstructorName *string   `json:"instructor_name"`
	IsLocked       bool      `json:"is_locked"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCourseView exposes a course without its enrollment key.
func NewCourseView(c *Course) CourseView {
	view := CourseView{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		InstructorID: c.InstructorID,
		IsLocked:     c.IsLocked(),
		CreatedAt:    c.CreatedAt,
	}
	if c.Instructor != nil {
		name := c.Instructor.Name
		view.InstructorName = &name
	}
	return view
}

type LessonSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	VideoURL  string `json:"video_url"`
	SortOrder int    `json:"sort_order"`
	IsPreview bool   `json:"is_preview"`
}

func NewLessonSummary(l *Lesson) LessonSummary {
	return LessonSummary{ID: l.ID, Title: l.Title, VideoURL: l.VideoURL, SortOrder: l.SortOrder, IsPreview: l.IsPreview}
}

type LessonDetail struct {
	LessonSummary
	ModuleID      uint   `json:"module_id"`
	ContentText   string `json:"content_text"`
	AttachmentURL string `json:"attachment_url"`
	CourseID      uint   `json:"course_id"`
	Completed     bool   `json:"completed"`
}

type ModuleView struct {
	ID        uint            `json:"id"`
	CourseID  uint            `json:"course_id"`
	Title     string          `json:"title"`
	SortOrder int             `json:"sort_order"`
	Lessons   []LessonSummary `json:"lessons"`
}

func NewModuleView(m *Module) ModuleView {
	view := ModuleView{
		ID:        m.ID,
		CourseID:  m.CourseID,
		Title:     m.Title,
		SortOrder: m.SortOrder,
		Lessons:   make([]LessonSummary, 0, len(m.Lessons)),
	}
	for i := range m.Lessons {
		view.Lessons = append(view.Lessons, NewLessonSummary(&m.Lessons[i]))
	}
	return view
}

type SubmissionView struct {
	ID           uint       `json:"id"`
	AssignmentID uint       `json:"assignment_id"`
	StudentID    uint       `json:"student_id"`
	StudentName  string     `json:"student_name,omitempty"`
	FileURL      string     `json:"file_url"`
	Text         string     `json:"text"`
	Grade        *float64   `json:"grade"`
	Feedback     string     `json:"feedback"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at"`
}

func NewSubmissionView(s *Submission) SubmissionView {
	view := SubmissionView{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		StudentID:    s.StudentID,
		FileURL:      s.FileURL,
		Text:         s.Text,
		Grade:        s.Grade,
		Feedback:     s.Feedback,
		SubmittedAt:  s.SubmittedAt,
		GradedAt:     s.GradedAt,
	}
	if s.Student != nil {
		view.StudentName = s.Student.Name
	}
	return view
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
