package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type LessonPostgreSQL struct {
	db *gorm.DB
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &LessonPostgreSQL{db: db}
}

func (l *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	if err := l.db.WithContext(ctx).Omit("Module").Create(lesson).Error; err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}
	return nil
}

func (l *LessonPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	query := l.db.WithContext(ctx).Preload("Module").Where("id = ?", id)
	if err := first(query, &lesson, "lesson"); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (l *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	if err := l.db.WithContext(ctx).Omit("Module").Save(lesson).Error; err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}
	return nil
}

func (l *LessonPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := deleteByID(ctx, l.db, &models.Lesson{}, id); err != nil {
		return fmt.Errorf("failed to delete lesson %d: %w", id, err)
	}
	return nil
}

func (l *LessonPostgreSQL) ListByModule(ctx context.Context, moduleID uint) ([]*models.Lesson, error) {
	var lessons []*models.Lesson
	err := l.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("sort_order ASC, id ASC").
		Find(&lessons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.Assignment) error {
	if err := a.db.WithContext(ctx).Omit("Module").Create(assignment).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	query := a.db.WithContext(ctx).Preload("Module.Course").Where("id = ?", id)
	if err := first(query, &assignment, "assignment"); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (a *AssignmentPostgreSQL) Update(ctx context.Context, assignment *models.Assignment) error {
	if err := a.db.WithContext(ctx).Omit("Module").Save(assignment).Error; err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := deleteByID(ctx, a.db, &models.Assignment{}, id); err != nil {
		return fmt.Errorf("failed to delete assignment %d: %w", id, err)
	}
	return nil
}

func (a *AssignmentPostgreSQL) ListByModule(ctx context.Context, moduleID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := a.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (a *AssignmentPostgreSQL) ListDatedByCourses(ctx context.Context, courseIDs []uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	if len(courseIDs) == 0 {
		return assignments, nil
	}
	err := a.db.WithContext(ctx).
		Preload("Module.Course").
		Where(courseScope, courseIDs).
		Where("due_date IS NOT NULL").
		Order("due_date ASC, id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dated assignments: %w", err)
	}
	return assignments, nil
}

func (a *AssignmentPostgreSQL) ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := a.db.WithContext(ctx).
		Preload("Module.Course").
		Where("due_date > ? AND due_date <= ?", from.UTC(), to.UTC()).
		Order("due_date ASC, id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments due soon: %w", err)
	}
	return assignments, nil
}
