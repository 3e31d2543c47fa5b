package models

import "time"

type Submission struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	AssignmentID uint       `json:"assignment_id" gorm:"not null;index"`
	StudentID    uint       `json:"student_id" gorm:"not null;index"`
	FileURL      string     `json:"file_url" gorm:"column:submission_file_url;type:text"`
	Text         string     `json:"text" gorm:"column:submission_text;type:text"`
	Grade        *float64   `json:"grade" gorm:"type:numeric(5,2);index"`
	Feedback     string     `json:"feedback" gorm:"type:text"`
	SubmittedAt  time.Time  `json:"submitted_at" gorm:"autoCreateTime;index"`
	GradedAt     *time.Time `json:"graded_at"`

	// Relations
	Assignment *Assignment `json:"-" gorm:"foreignKey:AssignmentID"`
	Student    *User       `json:"-" gorm:"foreignKey:StudentID"`
}

func (Submission) TableName() string {
	return "submissions"
}

// IsGraded reports whether a grade has been recorded.
func (s *Submission) IsGraded() bool {
	return s.Grade != nil
}

type Enrollment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course;index"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`

	// Relations
	Student *User   `json:"-" gorm:"foreignKey:StudentID"`
	Course  *Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

type LessonCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_completion_student_lesson"`
	LessonID    uint      `json:"lesson_id" gorm:"not null;uniqueIndex:idx_completion_student_lesson;index"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`

	// Relations
	Student *User   `json:"-" gorm:"foreignKey:StudentID"`
	Lesson  *Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
