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

type lessonService struct {
	repo      repositories.Repository
	media     MediaService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonService(repo repositories.Repository, media MediaService, logger *slog.Logger, validator *validator.Validator) LessonService {
	return &lessonService{repo: repo, media: media, logger: logger, validator: validator}
}

func (s *lessonService) ListByModule(ctx context.Context, moduleID uint) ([]models.LessonSummary, error) {
	lessons, err := s.repo.Lesson().ListByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	out := make([]models.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, models.NewLessonSummary(l))
	}
	return out, nil
}

func (s *lessonService) GetByID(ctx context.Context, id, studentID uint) (*models.LessonDetail, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrLessonNotFound, "get lesson")
	}

	detail := &models.LessonDetail{
		LessonSummary: models.NewLessonSummary(lesson),
		ModuleID:      lesson.ModuleID,
		ContentText:   lesson.ContentText,
		AttachmentURL: lesson.AttachmentURL,
	}
	if lesson.Module != nil {
		detail.CourseID = lesson.Module.CourseID
	}

	if studentID != 0 {
		completed, err := s.repo.Completion().Exists(ctx, studentID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check completion: %w", err)
		}
		detail.Completed = completed
	}

	return detail, nil
}

// Create stores a lesson. An uploaded material file takes the place of the
// video URL.
func (s *lessonService) Create(ctx context.Context, moduleID uint, req *CreateLessonRequest, material *FileUpload) (*models.LessonSummary, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Module().GetByID(ctx, moduleID); err != nil {
		return nil, notFoundAs(err, ErrModuleNotFound, "get module")
	}

	lesson := &models.Lesson{
		ModuleID:    moduleID,
		Title:       strings.TrimSpace(req.Title),
		ContentText: req.ContentText,
		VideoURL:    req.VideoURL,
		SortOrder:   int(req.SortOrder),
		IsPreview:   bool(req.IsPreview),
	}

	url, err := uploadOptional(ctx, s.media, material, repositories.FolderLessons)
	if err != nil {
		return nil, err
	}
	if url != "" {
		lesson.VideoURL = url
	}

	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("Lesson created", "lesson_id", lesson.ID, "module_id", moduleID)
	summary := models.NewLessonSummary(lesson)
	return &summary, nil
}

func (s *lessonService) Update(ctx context.Context, id uint, req *UpdateLessonRequest, material *FileUpload) (*models.LessonSummary, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	url, err := uploadOptional(ctx, s.media, material, repositories.FolderLessons)
	if err != nil {
		return nil, err
	}

	var updated *models.Lesson
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		lesson, err := tx.Lesson().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrLessonNotFound, "get lesson")
		}

		if title := strings.TrimSpace(req.Title); title != "" {
			lesson.Title = title
		}
		if req.ContentText != "" {
			lesson.ContentText = req.ContentText
		}
		if req.VideoURL != "" {
			lesson.VideoURL = req.VideoURL
		}
		if url != "" {
			lesson.VideoURL = url
		}
		if req.SortOrder != nil {
			lesson.SortOrder = int(*req.SortOrder)
		}
		if req.IsPreview != nil {
			lesson.IsPreview = bool(*req.IsPreview)
		}

		if err := tx.Lesson().Update(ctx, lesson); err != nil {
			return err
		}
		updated = lesson
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := models.NewLessonSummary(updated)
	return &summary, nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Lesson().Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrLessonNotFound, "delete lesson")
	}
	s.logger.Info("Lesson deleted", "lesson_id", id)
	return nil
}
