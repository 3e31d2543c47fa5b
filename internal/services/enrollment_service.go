package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) EnrollmentService {
	return &enrollmentService{repo: repo, publisher: publisher, logger: logger, validator: validator}
}

// ===== ENROLLMENT GATE =====

// Enroll checks, in order: the course exists, the student is not already
// enrolled, and the enrollment key matches when the course is locked.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	studentID := req.StudentID.Uint()
	courseID := req.CourseID.Uint()

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Course().GetByID(ctx, courseID)
		if err != nil {
			return notFoundAs(err, ErrCourseNotFound, "get course")
		}

		studentExists, err := tx.User().ExistsByID(ctx, studentID)
		if err != nil {
			return fmt.Errorf("failed to check student: %w", err)
		}
		if !studentExists {
			return ErrUserNotFound
		}

		enrolled, err := tx.Enrollment().Exists(ctx, studentID, courseID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if enrolled {
			return ErrAlreadyEnrolled
		}

		if course.IsLocked() {
			if req.EnrollmentKey == nil || *req.EnrollmentKey != *course.EnrollmentKey {
				s.logger.Info("Enrollment key rejected", "student_id", studentID, "course_id", courseID)
				return ErrInvalidEnrollmentKey
			}
		}

		created, err := tx.Enrollment().CreateIfAbsent(ctx, &models.Enrollment{
			StudentID: studentID,
			CourseID:  courseID,
		})
		if err != nil {
			return err
		}
		if !created {
			return ErrAlreadyEnrolled
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student enrolled", "student_id", studentID, "course_id", courseID)
	publishEvent(ctx, s.publisher, s.logger, events.EnrollmentCreated, events.EnrollmentEvent{
		StudentID: studentID,
		CourseID:  courseID,
	})
	return nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, req *UnenrollRequest) error {
	studentID := req.Student()
	courseID := req.CourseID.Uint()
	if studentID == 0 || courseID == 0 {
		return NewValidationError("course_id", "Missing user_id or course_id")
	}

	if err := s.repo.Enrollment().Delete(ctx, studentID, courseID); err != nil {
		return notFoundAs(err, ErrEnrollmentNotFound, "delete enrollment")
	}

	s.logger.Info("Student unenrolled", "student_id", studentID, "course_id", courseID)
	publishEvent(ctx, s.publisher, s.logger, events.EnrollmentDeleted, events.EnrollmentEvent{
		StudentID: studentID,
		CourseID:  courseID,
	})
	return nil
}

// ===== LESSON COMPLETION =====

func (s *enrollmentService) CompleteLesson(ctx context.Context, lessonID, studentID uint) (bool, error) {
	if studentID == 0 {
		return false, NewValidationError("student_id", "Student ID required")
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, lessonID)
	if err != nil {
		return false, notFoundAs(err, ErrLessonNotFound, "get lesson")
	}

	studentExists, err := s.repo.User().ExistsByID(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to check student: %w", err)
	}
	if !studentExists {
		return false, ErrUserNotFound
	}

	created, err := s.repo.Completion().CreateIfAbsent(ctx, &models.LessonCompletion{
		StudentID: studentID,
		LessonID:  lessonID,
	})
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	var courseID uint
	if lesson.Module != nil {
		courseID = lesson.Module.CourseID
	}
	s.logger.Info("Lesson completed", "lesson_id", lessonID, "student_id", studentID)
	publishEvent(ctx, s.publisher, s.logger, events.LessonCompleted, events.LessonCompletedEvent{
		StudentID: studentID,
		LessonID:  lessonID,
		CourseID:  courseID,
	})
	return true, nil
}
