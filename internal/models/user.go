package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"column:password;not null"`
	Role         UserRole `json:"role" gorm:"not null;size:20;default:student"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	CoursesTaught     []Course           `json:"-" gorm:"foreignKey:InstructorID;constraint:OnDelete:SET NULL"`
	Enrollments       []Enrollment       `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Submissions       []Submission       `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	LessonCompletions []LessonCompletion `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Module{},
		&Lesson{},
		&Assignment{},
		&Submission{},
		&Enrollment{},
		&LessonCompletion{},
	}
}
