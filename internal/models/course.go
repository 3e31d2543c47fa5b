package models

import (
	"strings"
	"time"
)

type Course struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	InstructorID *uint   `json:"instructor_id" gorm:"index"`
	Title        string  `json:"title" gorm:"not null;type:text"`
	Description  string  `json:"description" gorm:"type:text"`
	Category     string  `json:"category" gorm:"size:100"`
	Price        float64 `json:"price" gorm:"type:numeric(10,2);default:0"`
	ThumbnailURL string  `json:"thumbnail_url" gorm:"type:text"`

	// Never serialized; clients only see IsLocked.
	EnrollmentKey *string `json:"-" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Instructor  *User        `json:"-" gorm:"foreignKey:InstructorID"`
	Modules     []Module     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

// IsLocked reports whether enrollment requires a key.
func (c *Course) IsLocked() bool {
	return c.EnrollmentKey != nil && *c.EnrollmentKey != ""
}

// NormalizeEnrollmentKey maps a blank key to nil. Non-blank keys are kept
// verbatim because enrollment compares them exactly.
func NormalizeEnrollmentKey(key *string) *string {
	if key == nil || strings.TrimSpace(*key) == "" {
		return nil
	}
	k := *key
	return &k
}

type Module struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null;type:text"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Course      *Course      `json:"-" gorm:"foreignKey:CourseID"`
	Lessons     []Lesson     `json:"lessons,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}

func (Module) TableName() string {
	return "modules"
}

type Lesson struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ModuleID      uint      `json:"module_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null;type:text"`
	ContentText   string    `json:"content_text" gorm:"type:text"`
	VideoURL      string    `json:"video_url" gorm:"type:text"`
	AttachmentURL string    `json:"attachment_url" gorm:"type:text"`
	SortOrder     int       `json:"sort_order" gorm:"default:0"`
	IsPreview     bool      `json:"is_preview" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Module      *Module            `json:"-" gorm:"foreignKey:ModuleID"`
	Completions []LessonCompletion `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Assignment struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ModuleID      uint       `json:"module_id" gorm:"not null;index"`
	Title         string     `json:"title" gorm:"not null;type:text"`
	Description   string     `json:"description" gorm:"type:text"`
	DueDate       *time.Time `json:"due_date" gorm:"index"`
	AttachmentURL string     `json:"attachment_url" gorm:"type:text"`
	LinkURL       string     `json:"link_url" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`

	// Relations
	Module      *Module      `json:"-" gorm:"foreignKey:ModuleID"`
	Submissions []Submission `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}

func (Assignment) TableName() string {
	return "assignments"
}
