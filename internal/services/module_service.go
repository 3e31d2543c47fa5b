package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type moduleService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewModuleService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ModuleService {
	return &moduleService{repo: repo, logger: logger, validator: validator}
}

// ListByCourse returns modules by sort order, each with its lessons.
func (s *moduleService) ListByCourse(ctx context.Context, courseID uint) ([]models.ModuleView, error) {
	modules, err := s.repo.Module().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	views := make([]models.ModuleView, 0, len(modules))
	for _, m := range modules {
		views = append(views, models.NewModuleView(m))
	}
	return views, nil
}

func (s *moduleService) Create(ctx context.Context, courseID uint, req *CreateModuleRequest) (*models.ModuleView, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.Course().Exists(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	module := &models.Module{
		CourseID:  courseID,
		Title:     strings.TrimSpace(req.Title),
		SortOrder: int(req.SortOrder),
	}
	if err := s.repo.Module().Create(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.logger.Info("Module created", "module_id", module.ID, "course_id", courseID)
	view := models.NewModuleView(module)
	return &view, nil
}

func (s *moduleService) Update(ctx context.Context, id uint, req *UpdateModuleRequest) (*models.ModuleView, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var updated *models.Module
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		module, err := tx.Module().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrModuleNotFound, "get module")
		}

		if req.Title != nil {
			module.Title = strings.TrimSpace(*req.Title)
		}
		if req.SortOrder != nil {
			module.SortOrder = int(*req.SortOrder)
		}

		if err := tx.Module().Update(ctx, module); err != nil {
			return err
		}
		updated = module
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := models.NewModuleView(updated)
	return &view, nil
}

func (s *moduleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Module().Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrModuleNotFound, "delete module")
	}
	s.logger.Info("Module deleted", "module_id", id)
	return nil
}
