package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{db: db}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	if err := s.db.WithContext(ctx).Omit("Assignment", "Student").Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	if err := first(s.db.WithContext(ctx).Where("id = ?", id), &submission, "submission"); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) Update(ctx context.Context, submission *models.Submission) error {
	if err := s.db.WithContext(ctx).Omit("Assignment", "Student").Save(submission).Error; err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

func (s *SubmissionPostgreSQL) ListByAssignment(ctx context.Context, assignmentID uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := s.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC, id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionPostgreSQL) GetLatest(ctx context.Context, assignmentID, studentID uint) (*models.Submission, error) {
	var submission models.Submission
	query := s.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Order("submitted_at DESC, id DESC")
	if err := first(query, &submission, "submission"); err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) SubmittedAssignmentIDs(ctx context.Context, studentID uint, assignmentIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(assignmentIDs) == 0 {
		return result, nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("student_id = ? AND assignment_id IN ?", studentID, assignmentIDs).
		Distinct().
		Pluck("assignment_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get submitted assignments: %w", err)
	}

	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

func (s *SubmissionPostgreSQL) SubmitterIDs(ctx context.Context, assignmentID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("assignment_id = ?", assignmentID).
		Distinct().
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get submitters: %w", err)
	}

	result := make(map[uint]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (e *EnrollmentPostgreSQL) CreateIfAbsent(ctx context.Context, enrollment *models.Enrollment) (bool, error) {
	created, err := insertIfAbsent(ctx, e.db.Omit("Student", "Course"), enrollment)
	if err != nil {
		return false, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return created, nil
}

func (e *EnrollmentPostgreSQL) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	return exists(ctx, e.db, &models.Enrollment{}, "student_id = ? AND course_id = ?", studentID, courseID)
}

func (e *EnrollmentPostgreSQL) Delete(ctx context.Context, studentID, courseID uint) error {
	result := e.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete enrollment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("enrollment: %w", repositories.ErrNotFound)
	}
	return nil
}

func (e *EnrollmentPostgreSQL) ListCoursesByStudent(ctx context.Context, studentID uint) ([]*models.Course, error) {
	var enrollments []*models.Enrollment
	err := e.db.WithContext(ctx).
		Preload("Course.Instructor").
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}

	courses := make([]*models.Course, 0, len(enrollments))
	for _, en := range enrollments {
		if en.Course != nil {
			courses = append(courses, en.Course)
		}
	}
	return courses, nil
}

func (e *EnrollmentPostgreSQL) ListStudentsByCourse(ctx context.Context, courseID uint) ([]*models.User, error) {
	var students []*models.User
	err := e.db.WithContext(ctx).
		Where("id IN (SELECT student_id FROM enrollments WHERE course_id = ?)", courseID).
		Order("id ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled students: %w", err)
	}
	return students, nil
}

type CompletionPostgreSQL struct {
	db *gorm.DB
}

func NewCompletionPostgreSQL(db *gorm.DB) repositories.CompletionRepository {
	return &CompletionPostgreSQL{db: db}
}

func (c *CompletionPostgreSQL) CreateIfAbsent(ctx context.Context, completion *models.LessonCompletion) (bool, error) {
	created, err := insertIfAbsent(ctx, c.db.Omit("Student", "Lesson"), completion)
	if err != nil {
		return false, fmt.Errorf("failed to create lesson completion: %w", err)
	}
	return created, nil
}

func (c *CompletionPostgreSQL) Exists(ctx context.Context, studentID, lessonID uint) (bool, error) {
	return exists(ctx, c.db, &models.LessonCompletion{}, "student_id = ? AND lesson_id = ?", studentID, lessonID)
}
