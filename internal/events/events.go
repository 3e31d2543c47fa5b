package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "course-service"
	EventVersion = "1.0"
)

type EventType string

const (
	EnrollmentCreated   EventType = "enrollment.created"
	EnrollmentDeleted   EventType = "enrollment.deleted"
	LessonCompleted     EventType = "lesson.completed"
	SubmissionCreated   EventType = "submission.created"
	SubmissionGraded    EventType = "submission.graded"
	DeadlineApproaching EventType = "assignment.deadline_approaching"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType EventType, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ===== PAYLOADS =====

type EnrollmentEvent struct {
	StudentID uint `json:"student_id"`
	CourseID  uint `json:"course_id"`
}

type LessonCompletedEvent struct {
	StudentID uint `json:"student_id"`
	LessonID  uint `json:"lesson_id"`
	CourseID  uint `json:"course_id"`
}

type SubmissionEvent struct {
	SubmissionID uint     `json:"submission_id"`
	AssignmentID uint     `json:"assignment_id"`
	StudentID    uint     `json:"student_id"`
	Grade        *float64 `json:"grade,omitempty"`
}

type DeadlineEvent struct {
	AssignmentID uint      `json:"assignment_id"`
	Title        string    `json:"title"`
	CourseID     uint      `json:"course_id"`
	CourseTitle  string    `json:"course_title"`
	StudentID    uint      `json:"student_id"`
	DueDate      time.Time `json:"due_date"`
}
