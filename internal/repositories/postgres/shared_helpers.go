package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/course-service/internal/repositories"
)

// courseScope restricts a lesson or assignment query to the given courses.
const courseScope = "module_id IN (SELECT id FROM modules WHERE course_id IN ?)"

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"id":         true,
		"title":      true,
		"category":   true,
		"price":      true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "id"
	}

	if strings.EqualFold(sortOrder, "asc") {
		sortOrder = "ASC"
	} else {
		sortOrder = "DESC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// insertIfAbsent inserts value, reporting false when a unique index already
// holds the same key.
func insertIfAbsent(ctx context.Context, db *gorm.DB, value interface{}) (bool, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// deleteByID removes a row and maps zero affected rows to ErrNotFound.
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	result := db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// first loads one row into dest and maps gorm's not-found error.
func first(query *gorm.DB, dest interface{}, entity string) error {
	if err := query.First(dest).Error; err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%s: %w", entity, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", entity, err)
	}
	return nil
}

func exists(ctx context.Context, db *gorm.DB, model interface{}, where string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where(where, args...).Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
