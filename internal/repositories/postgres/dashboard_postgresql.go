package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// ===== INSTRUCTOR DASHBOARD =====

func (r *dashboardRepository) InstructorCourses(ctx context.Context, instructorID uint) ([]*models.Course, error) {
	var courses []*models.Course

	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("modules.sort_order ASC, modules.id ASC")
		}).
		Preload("Modules.Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("assignments.id ASC")
		}).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC, id DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load instructor courses: %w", err)
	}

	return courses, nil
}

func (r *dashboardRepository) UngradedCounts(ctx context.Context, instructorID uint) (map[uint]int64, error) {
	var rows []repositories.UngradedCount

	err := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Select("assignment_id, COUNT(*) AS count").
		Where("grade IS NULL").
		Where(`assignment_id IN (
			SELECT assignments.id FROM assignments
			JOIN modules ON modules.id = assignments.module_id
			JOIN courses ON courses.id = modules.course_id
			WHERE courses.instructor_id = ?)`, instructorID).
		Group("assignment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count ungraded submissions: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.AssignmentID] = row.Count
	}
	return counts, nil
}

// ===== STUDENT PROGRESS =====

type courseCount struct {
	CourseID uint
	N        int64
}

const (
	lessonTotalsSQL = `SELECT modules.course_id AS course_id, COUNT(lessons.id) AS n
		FROM lessons JOIN modules ON modules.id = lessons.module_id
		WHERE modules.course_id IN ?
		GROUP BY modules.course_id`

	assignmentTotalsSQL = `SELECT modules.course_id AS course_id, COUNT(assignments.id) AS n
		FROM assignments JOIN modules ON modules.id = assignments.module_id
		WHERE modules.course_id IN ?
		GROUP BY modules.course_id`

	completedLessonsSQL = `SELECT modules.course_id AS course_id, COUNT(lesson_completions.id) AS n
		FROM lesson_completions
		JOIN lessons ON lessons.id = lesson_completions.lesson_id
		JOIN modules ON modules.id = lessons.module_id
		WHERE lesson_completions.student_id = ? AND modules.course_id IN ?
		GROUP BY modules.course_id`

	submittedAssignmentsSQL = `SELECT modules.course_id AS course_id, COUNT(DISTINCT submissions.assignment_id) AS n
		FROM submissions
		JOIN assignments ON assignments.id = submissions.assignment_id
		JOIN modules ON modules.id = assignments.module_id
		WHERE submissions.student_id = ? AND modules.course_id IN ?
		GROUP BY modules.course_id`
)

func (r *dashboardRepository) CourseProgress(ctx context.Context, studentID uint, courseIDs []uint) (map[uint]repositories.ProgressCounts, error) {
	result := make(map[uint]repositories.ProgressCounts, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}
	for _, id := range courseIDs {
		result[id] = repositories.ProgressCounts{CourseID: id}
	}

	queries := []struct {
		sql   string
		args  []interface{}
		apply func(*repositories.ProgressCounts, int64)
	}{
		{lessonTotalsSQL, []interface{}{courseIDs}, func(p *repositories.ProgressCounts, n int64) { p.TotalLessons = n }},
		{assignmentTotalsSQL, []interface{}{courseIDs}, func(p *repositories.ProgressCounts, n int64) { p.TotalAssignments = n }},
		{completedLessonsSQL, []interface{}{studentID, courseIDs}, func(p *repositories.ProgressCounts, n int64) { p.CompletedLessons = n }},
		{submittedAssignmentsSQL, []interface{}{studentID, courseIDs}, func(p *repositories.ProgressCounts, n int64) { p.SubmittedAssignments = n }},
	}

	for _, q := range queries {
		var rows []courseCount
		if err := r.db.WithContext(ctx).Raw(q.sql, q.args...).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to compute course progress: %w", err)
		}
		for _, row := range rows {
			p := result[row.CourseID]
			q.apply(&p, row.N)
			result[row.CourseID] = p
		}
	}

	return result, nil
}
