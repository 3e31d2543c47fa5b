package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/cloudinary"
	"github.com/SAP-F-2025/course-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeMedia stands in for the media delegate.
type fakeMedia struct {
	mu       sync.Mutex
	uploads  []repositories.UploadInput
	signed   []repositories.MediaAsset
	fetched  []string
	fetchErr error
}

func (f *fakeMedia) Upload(ctx context.Context, in repositories.UploadInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, in)
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/%s/%s", in.Folder, in.Filename), nil
}

func (f *fakeMedia) ResolveAsset(rawURL string) (repositories.MediaAsset, bool) {
	return cloudinary.ParseAssetURL(rawURL, "demo")
}

func (f *fakeMedia) SignedURL(ctx context.Context, asset repositories.MediaAsset) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = append(f.signed, asset)
	return "https://signed.example/" + asset.PublicID, nil
}

func (f *fakeMedia) Fetch(ctx context.Context, url string) (*repositories.MediaDownload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, url)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &repositories.MediaDownload{
		Body:          io.NopCloser(strings.NewReader("file-bytes")),
		ContentType:   "application/pdf",
		ContentLength: 10,
	}, nil
}

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	media     *fakeMedia
	logger    *slog.Logger
	validator *validator.Validator
	clock     Clock
	manager   ServiceManager
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		publisher: events.NewMockEventPublisher(logger),
		media:     &fakeMedia{},
		logger:    logger,
		validator: validator.New(),
		clock:     func() time.Time { return testNow },
	}

	config := DefaultServiceManagerConfig()
	config.Course.CacheEnabled = false
	env.manager = NewServiceManager(ServiceDependencies{
		Repo:      env.repo,
		Cache:     cache.NewCacheManager(nil),
		Publisher: env.publisher,
		Media:     env.media,
		Logger:    logger,
		Validator: env.validator,
		Clock:     env.clock,
	}, config)
	require.NoError(t, env.manager.Initialize(context.Background()))

	return env
}

// ===== FIXTURES =====

func (e *testEnv) user(t *testing.T, name string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) course(t *testing.T, instructor *models.User, title string, key *string) *models.Course {
	t.Helper()
	c := &models.Course{Title: title, EnrollmentKey: key}
	if instructor != nil {
		c.InstructorID = &instructor.ID
	}
	require.NoError(t, e.db.Omit("Instructor").Create(c).Error)
	return c
}

func (e *testEnv) module(t *testing.T, course *models.Course, title string, order int) *models.Module {
	t.Helper()
	m := &models.Module{CourseID: course.ID, Title: title, SortOrder: order}
	require.NoError(t, e.db.Omit("Course", "Lessons", "Assignments").Create(m).Error)
	return m
}

func (e *testEnv) lesson(t *testing.T, module *models.Module, title string, order int) *models.Lesson {
	t.Helper()
	l := &models.Lesson{ModuleID: module.ID, Title: title, SortOrder: order}
	require.NoError(t, e.db.Omit("Module").Create(l).Error)
	return l
}

func (e *testEnv) assignment(t *testing.T, module *models.Module, title string, due *time.Time) *models.Assignment {
	t.Helper()
	a := &models.Assignment{ModuleID: module.ID, Title: title, DueDate: due}
	require.NoError(t, e.db.Omit("Module").Create(a).Error)
	return a
}

func (e *testEnv) submission(t *testing.T, assignment *models.Assignment, student *models.User, grade *float64) *models.Submission {
	t.Helper()
	s := &models.Submission{AssignmentID: assignment.ID, StudentID: student.ID, Grade: grade, FileURL: "https://example.com/work.pdf"}
	require.NoError(t, e.db.Omit("Assignment", "Student").Create(s).Error)
	return s
}

func (e *testEnv) enroll(t *testing.T, student *models.User, course *models.Course) {
	t.Helper()
	require.NoError(t, e.db.Omit("Student", "Course").Create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID}).Error)
}

func (e *testEnv) complete(t *testing.T, student *models.User, lesson *models.Lesson) {
	t.Helper()
	require.NoError(t, e.db.Omit("Student", "Lesson").Create(&models.LessonCompletion{StudentID: student.ID, LessonID: lesson.ID}).Error)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }
