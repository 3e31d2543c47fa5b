package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	cache     *cache.CacheManager
	media     MediaService
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceConfig
}

func NewCourseService(repo repositories.Repository, cacheManager *cache.CacheManager, media MediaService, logger *slog.Logger, validator *validator.Validator, config ServiceConfig) CourseService {
	if cacheManager == nil {
		cacheManager = cache.NewCacheManager(nil)
	}
	return &courseService{
		repo:      repo,
		cache:     cacheManager,
		media:     media,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

// ===== CATALOG =====

func (s *courseService) List(ctx context.Context, search string) ([]models.CourseView, error) {
	search = strings.TrimSpace(search)

	fetch := func() (interface{}, error) {
		courses, err := s.repo.Course().List(ctx, repositories.CourseFilters{
			Search:    search,
			SortBy:    "id",
			SortOrder: "desc",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
		return toCourseViews(courses), nil
	}

	if !s.config.CacheEnabled {
		views, err := fetch()
		if err != nil {
			return nil, err
		}
		return views.([]models.CourseView), nil
	}

	var views []models.CourseView
	if err := s.cache.Catalog.CacheOrExecute(ctx, cache.CatalogKey(strings.ToLower(search)), &views, s.ttl(cache.CatalogCacheConfig.TTL), fetch); err != nil {
		return nil, err
	}
	if views == nil {
		views = []models.CourseView{}
	}
	return views, nil
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*models.CourseView, error) {
	fetch := func() (interface{}, error) {
		course, err := s.repo.Course().GetByID(ctx, id)
		if err != nil {
			return nil, notFoundAs(err, ErrCourseNotFound, "get course")
		}
		return models.NewCourseView(course), nil
	}

	if !s.config.CacheEnabled {
		view, err := fetch()
		if err != nil {
			return nil, err
		}
		v := view.(models.CourseView)
		return &v, nil
	}

	var view models.CourseView
	if err := s.cache.Course.CacheOrExecute(ctx, cache.CourseKey(id), &view, s.ttl(cache.CourseCacheConfig.TTL), fetch); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *courseService) ListByInstructor(ctx context.Context, instructorID uint) ([]models.CourseView, error) {
	courses, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		InstructorID: &instructorID,
		SortBy:       "created_at",
		SortOrder:    "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}
	return toCourseViews(courses), nil
}

func (s *courseService) ListStudents(ctx context.Context, courseID uint) (*CourseStudentsResponse, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return nil, notFoundAs(err, ErrCourseNotFound, "get course")
	}

	students, err := s.repo.Enrollment().ListStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled students: %w", err)
	}

	resp := &CourseStudentsResponse{
		Course:   models.NewCourseView(course),
		Students: make([]models.UserSummary, 0, len(students)),
	}
	for _, u := range students {
		resp.Students = append(resp.Students, models.NewUserSummary(u))
	}
	return resp, nil
}

// ===== MUTATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, thumbnail *FileUpload) (*models.CourseView, error) {
	s.logger.Info("Creating course", "title", req.Title, "instructor_id", req.InstructorID)

	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	course := &models.Course{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Category:      req.Category,
		Price:         float64(req.Price),
		ThumbnailURL:  req.ThumbnailURL,
		EnrollmentKey: models.NormalizeEnrollmentKey(req.EnrollmentKey),
	}

	if req.InstructorID != 0 {
		instructorID := req.InstructorID.Uint()
		exists, err := s.repo.User().ExistsByID(ctx, instructorID)
		if err != nil {
			return nil, fmt.Errorf("failed to check instructor: %w", err)
		}
		if !exists {
			return nil, ErrUserNotFound
		}
		course.InstructorID = &instructorID
	}

	if thumbnail != nil {
		url, err := s.media.UploadThumbnail(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		course.ThumbnailURL = url
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, s.cache.Catalog, "list:*")
	s.logger.Info("Course created", "course_id", course.ID)

	return s.reload(ctx, course.ID)
}

func (s *courseService) Update(ctx context.Context, id uint, req *UpdateCourseRequest, thumbnail *FileUpload) (*models.CourseView, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var thumbnailURL string
	if thumbnail != nil {
		url, err := s.media.UploadThumbnail(ctx, thumbnail)
		if err != nil {
			return nil, err
		}
		thumbnailURL = url
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Course().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrCourseNotFound, "get course")
		}

		if req.Title != nil {
			course.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			course.Description = *req.Description
		}
		if req.Category != nil {
			course.Category = *req.Category
		}
		if req.Price != nil {
			course.Price = float64(*req.Price)
		}
		if req.EnrollmentKey.Set {
			course.EnrollmentKey = models.NormalizeEnrollmentKey(req.EnrollmentKey.Value)
		}
		if thumbnailURL != "" {
			course.ThumbnailURL = thumbnailURL
		}

		return tx.Course().Update(ctx, course)
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateCourseCache(ctx, s.cache, id)
	s.logger.Info("Course updated", "course_id", id)

	return s.reload(ctx, id)
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrCourseNotFound, "delete course")
	}

	cache.InvalidateCourseCache(ctx, s.cache, id)
	s.logger.Info("Course deleted", "course_id", id)
	return nil
}

// reload bypasses the cache so callers see the committed row.
func (s *courseService) reload(ctx context.Context, id uint) (*models.CourseView, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrCourseNotFound, "reload course")
	}
	view := models.NewCourseView(course)
	return &view, nil
}

func (s *courseService) ttl(fallback time.Duration) time.Duration {
	if s.config.CacheTTL > 0 {
		return s.config.CacheTTL
	}
	return fallback
}

func toCourseViews(courses []*models.Course) []models.CourseView {
	views := make([]models.CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, models.NewCourseView(c))
	}
	return views
}
