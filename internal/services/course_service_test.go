package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

func TestCourseCreate_HidesKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	instructor := env.user(t, "Tess", models.RoleInstructor)

	view, err := env.manager.Course().Create(ctx, &CreateCourseRequest{
		Title:         "  Go  ",
		Price:         19.5,
		InstructorID:  validator.FlexID(instructor.ID),
		EnrollmentKey: strPtr("ABC123"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go", view.Title)
	assert.True(t, view.IsLocked)
	require.NotNil(t, view.InstructorName)
	assert.Equal(t, "Tess", *view.InstructorName)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ABC123")
	assert.NotContains(t, string(data), "enrollment_key")
}

func TestCourseCreate_BlankKeyIsOpen(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.manager.Course().Create(context.Background(), &CreateCourseRequest{
		Title:         "Go",
		EnrollmentKey: strPtr("   "),
	}, nil)
	require.NoError(t, err)
	assert.False(t, view.IsLocked)

	var stored models.Course
	require.NoError(t, env.db.First(&stored, view.ID).Error)
	assert.Nil(t, stored.EnrollmentKey)
}

func TestCourseCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Course().Create(ctx, &CreateCourseRequest{Title: " "}, nil)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = env.manager.Course().Create(ctx, &CreateCourseRequest{Title: "Go", InstructorID: 77}, nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCourseCreate_ThumbnailUpload(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.manager.Course().Create(context.Background(), &CreateCourseRequest{Title: "Go"},
		&FileUpload{Reader: strings.NewReader("not an image"), Filename: "cover.png"})
	require.NoError(t, err)

	require.Len(t, env.media.uploads, 1)
	assert.Equal(t, "eduplatform/thumbnails", env.media.uploads[0].Folder)
	assert.Equal(t, "cover.png", env.media.uploads[0].Filename)
	assert.Contains(t, view.ThumbnailURL, "cover.png")
}

func TestCourseSearchAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Course()

	env.course(t, nil, "Intro to Go", nil)
	rust := env.course(t, nil, "Rust Basics", nil)

	found, err := svc.List(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Intro to Go", found[0].Title)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, rust.ID, all[0].ID)

	title := "Rust Advanced"
	updated, err := svc.Update(ctx, rust.ID, &UpdateCourseRequest{
		Title:         &title,
		EnrollmentKey: validator.OptionalString{Set: true, Value: strPtr("k")},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Rust Advanced", updated.Title)
	assert.True(t, updated.IsLocked)

	updated, err = svc.Update(ctx, rust.ID, &UpdateCourseRequest{
		EnrollmentKey: validator.OptionalString{Set: true},
	}, nil)
	require.NoError(t, err)
	assert.False(t, updated.IsLocked)

	_, err = svc.Update(ctx, 999, &UpdateCourseRequest{Title: &title}, nil)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseDelete_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)
	mod := env.module(t, course, "M", 1)
	env.lesson(t, mod, "L", 1)
	env.assignment(t, mod, "A", nil)
	env.enroll(t, student, course)

	require.NoError(t, env.manager.Course().Delete(ctx, course.ID))
	assert.ErrorIs(t, env.manager.Course().Delete(ctx, course.ID), ErrCourseNotFound)

	for _, model := range []interface{}{&models.Module{}, &models.Lesson{}, &models.Assignment{}, &models.Enrollment{}} {
		var count int64
		require.NoError(t, env.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestCourseStudents(t *testing.T) {
	env := newTestEnv(t)
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)
	env.enroll(t, student, course)

	resp, err := env.manager.Course().ListStudents(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", resp.Course.Title)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, "Sam", resp.Students[0].Name)

	_, err = env.manager.Course().ListStudents(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseCatalog_CachedAndInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db := newTestDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewCourseService(repo, cache.NewCacheManager(client), NewMediaService(nil, logger), logger, validator.New(),
		ServiceConfig{Enabled: true, CacheEnabled: true})
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCourseRequest{Title: "Go"}, nil)
	require.NoError(t, err)

	first, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A row written behind the service is hidden by the cache.
	require.NoError(t, db.Create(&models.Course{Title: "Hidden"}).Error)
	cached, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	_, err = svc.Create(ctx, &CreateCourseRequest{Title: "Rust"}, nil)
	require.NoError(t, err)
	fresh, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}
