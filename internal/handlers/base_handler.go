package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse = models.ErrorResponse

// BaseHandler carries the logging and error mapping shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	l := utils.LoggerFromContext(c, h.logger)
	l.Info(msg, append([]any{"method", c.Request.Method, "path", c.FullPath()}, args...)...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	l := utils.LoggerFromContext(c, h.logger)
	l.Error(msg, append([]any{"error", err, "path", c.FullPath()}, args...)...)
}

func (h *BaseHandler) abort(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// parseIDParam writes a 400 and returns 0 when the path id is not a positive integer.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid " + param,
			Details: "ID must be a valid number",
		})
		return 0
	}
	return uint(id)
}

// optionalUint parses an optional numeric query value; malformed values read as 0.
func optionalUint(raw string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// bind decodes a JSON, urlencoded or multipart body into req.
func (h *BaseHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// formFile opens an optional multipart file. The returned closer is never nil.
func (h *BaseHandler) formFile(c *gin.Context, field string) (*services.FileUpload, func(), bool) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, noop, true
	}

	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, true
	}
	if err != nil {
		h.abort(c, http.StatusBadRequest, "Invalid "+field)
		return nil, noop, false
	}
	if header.Size == 0 && header.Filename == "" {
		return nil, noop, true
	}

	file, err := header.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file", "field", field)
		h.abort(c, http.StatusBadRequest, "Invalid "+field)
		return nil, noop, false
	}
	return uploadFrom(file, header), func() { file.Close() }, true
}

func uploadFrom(file multipart.File, header *multipart.FileHeader) *services.FileUpload {
	return &services.FileUpload{Reader: file, Filename: header.Filename, Size: header.Size}
}

// ===== ERROR HANDLING =====

var notFoundMessages = []struct {
	err     error
	message string
}{
	{services.ErrUserNotFound, "User not found"},
	{services.ErrCourseNotFound, "Course not found"},
	{services.ErrModuleNotFound, "Module not found"},
	{services.ErrLessonNotFound, "Lesson not found"},
	{services.ErrAssignmentNotFound, "Assignment not found"},
	{services.ErrSubmissionNotFound, "Submission not found"},
	{services.ErrEnrollmentNotFound, "Enrollment not found"},
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		if len(verrs) == 1 && verrs[0].Rule == "business_logic" {
			h.abort(c, http.StatusBadRequest, verrs[0].Message)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verrs.Error(), Details: verrs})
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			h.abort(c, http.StatusNotFound, nf.message)
			return
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		h.abort(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrInvalidEnrollmentKey):
		h.abort(c, http.StatusForbidden, "Invalid Enrollment Key")
	case errors.Is(err, services.ErrAlreadyEnrolled):
		h.abort(c, http.StatusBadRequest, "Already enrolled")
	case errors.Is(err, services.ErrEmailTaken):
		h.abort(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, services.ErrInvalidGrade):
		h.abort(c, http.StatusBadRequest, "Grade must be a number")
	case errors.Is(err, services.ErrMediaFetchFailed):
		h.abort(c, http.StatusNotFound, "File not found or fetch failed")
	case errors.Is(err, services.ErrMediaUnavailable):
		h.abort(c, http.StatusServiceUnavailable, "Media storage unavailable")
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		h.abort(c, http.StatusBadRequest, err.Error())
	default:
		h.LogError(c, err, "Unexpected service error")
		h.abort(c, http.StatusInternalServerError, "Internal server error")
	}
}
