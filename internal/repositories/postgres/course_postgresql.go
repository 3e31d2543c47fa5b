package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Omit("Instructor").Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	query := c.db.WithContext(ctx).Preload("Instructor").Where("id = ?", id)
	if err := first(query, &course, "course"); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Omit("Instructor").Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := deleteByID(ctx, c.db, &models.Course{}, id); err != nil {
		return fmt.Errorf("failed to delete course %d: %w", id, err)
	}
	return nil
}

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{}).Preload("Instructor")

	if s := strings.TrimSpace(filters.Search); s != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}

	query = ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (c *CoursePostgreSQL) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, c.db, &models.Course{}, "id = ?", id)
}

type ModulePostgreSQL struct {
	db *gorm.DB
}

func NewModulePostgreSQL(db *gorm.DB) repositories.ModuleRepository {
	return &ModulePostgreSQL{db: db}
}

func orderedLessons(db *gorm.DB) *gorm.DB {
	return db.Order("lessons.sort_order ASC, lessons.id ASC")
}

func (m *ModulePostgreSQL) Create(ctx context.Context, module *models.Module) error {
	if err := m.db.WithContext(ctx).Omit("Course", "Lessons", "Assignments").Create(module).Error; err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}
	return nil
}

func (m *ModulePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Module, error) {
	var module models.Module
	query := m.db.WithContext(ctx).Preload("Lessons", orderedLessons).Where("id = ?", id)
	if err := first(query, &module, "module"); err != nil {
		return nil, err
	}
	return &module, nil
}

func (m *ModulePostgreSQL) Update(ctx context.Context, module *models.Module) error {
	err := m.db.WithContext(ctx).
		Model(&models.Module{}).
		Where("id = ?", module.ID).
		Updates(map[string]interface{}{
			"title":      module.Title,
			"sort_order": module.SortOrder,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update module: %w", err)
	}
	return nil
}

func (m *ModulePostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := deleteByID(ctx, m.db, &models.Module{}, id); err != nil {
		return fmt.Errorf("failed to delete module %d: %w", id, err)
	}
	return nil
}

func (m *ModulePostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Module, error) {
	var modules []*models.Module
	err := m.db.WithContext(ctx).
		Preload("Lessons", orderedLessons).
		Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&modules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}
