package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/course-service/internal/cache"
	"github.com/SAP-F-2025/course-service/internal/config"
	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/repositories/cloudinary"
	"github.com/SAP-F-2025/course-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

const allowedOrigin = "http://localhost:5173"

type stubMedia struct {
	uploads []repositories.UploadInput
}

func (s *stubMedia) Upload(ctx context.Context, in repositories.UploadInput) (string, error) {
	s.uploads = append(s.uploads, in)
	return fmt.Sprintf("https://res.cloudinary.com/demo/raw/upload/v1/%s/%s", in.Folder, in.Filename), nil
}

func (s *stubMedia) ResolveAsset(rawURL string) (repositories.MediaAsset, bool) {
	return cloudinary.ParseAssetURL(rawURL, "demo")
}

func (s *stubMedia) SignedURL(ctx context.Context, asset repositories.MediaAsset) (string, error) {
	return "https://signed.example/" + asset.PublicID, nil
}

func (s *stubMedia) Fetch(ctx context.Context, url string) (*repositories.MediaDownload, error) {
	if strings.Contains(url, "missing") {
		return nil, fmt.Errorf("upstream returned 404")
	}
	return &repositories.MediaDownload{
		Body:          io.NopCloser(strings.NewReader("%PDF-1.4")),
		ContentType:   "application/pdf",
		ContentLength: 8,
	}, nil
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	media  *stubMedia
}

// newTestServer wires the full stack over an in-memory database. A nil media
// stub leaves the media delegate unconfigured.
func newTestServer(t *testing.T, media *stubMedia) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := services.ServiceDependencies{
		Repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		Cache:     cache.NewCacheManager(nil),
		Publisher: events.NewMockEventPublisher(slogger),
		Logger:    slogger,
	}
	if media != nil {
		deps.Media = media
	}

	cfg := services.DefaultServiceManagerConfig()
	cfg.Course.CacheEnabled = false
	manager := services.NewServiceManager(deps, cfg)
	require.NoError(t, manager.Initialize(context.Background()))

	logger := utils.NewSlogLogger(slogger)
	router := gin.New()
	SetupMiddleware(router, logger, config.CORSConfig{AllowedOrigins: []string{allowedOrigin}})
	NewHandlerManager(manager, logger).SetupRoutes(router)

	return &testServer{router: router, db: db, media: media}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

// multipart posts fields plus one optional file.
func (s *testServer) multipart(t *testing.T, path string, fields map[string]string, fileField, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decode(t, rec)["error"].(string)
	return msg
}

// ===== FIXTURES =====

func (s *testServer) user(t *testing.T, name string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", PasswordHash: "x", Role: role}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *testServer) course(t *testing.T, instructor *models.User, title string, key *string) *models.Course {
	t.Helper()
	c := &models.Course{Title: title, EnrollmentKey: key}
	if instructor != nil {
		c.InstructorID = &instructor.ID
	}
	require.NoError(t, s.db.Omit("Instructor").Create(c).Error)
	return c
}

func (s *testServer) module(t *testing.T, course *models.Course) *models.Module {
	t.Helper()
	m := &models.Module{CourseID: course.ID, Title: "Week 1", SortOrder: 1}
	require.NoError(t, s.db.Omit("Course", "Lessons", "Assignments").Create(m).Error)
	return m
}

func (s *testServer) lesson(t *testing.T, module *models.Module) *models.Lesson {
	t.Helper()
	l := &models.Lesson{ModuleID: module.ID, Title: "Intro", SortOrder: 1}
	require.NoError(t, s.db.Omit("Module").Create(l).Error)
	return l
}

func (s *testServer) assignment(t *testing.T, module *models.Module, due *time.Time) *models.Assignment {
	t.Helper()
	a := &models.Assignment{ModuleID: module.ID, Title: "Essay", DueDate: due}
	require.NoError(t, s.db.Omit("Module").Create(a).Error)
	return a
}

func strPtr(s string) *string { return &s }
