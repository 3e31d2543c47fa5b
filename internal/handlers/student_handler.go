package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// GetStudentCourses returns enrolled courses with progress
// @Summary Get student courses
// @Description Each course carries progress (0-100, one decimal), the nearest future deadline and its task title
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]interface{} "courses"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/{id}/courses [get]
func (h *StudentHandler) GetStudentCourses(c *gin.Context) {
	studentID := h.parseIDParam(c, "id")
	if studentID == 0 {
		return
	}

	h.LogRequest(c, "Getting student courses", "student_id", studentID)

	courses, err := h.service.ListCourses(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GetStudentTimeline returns dated assignments across enrolled courses
// @Summary Get student timeline
// @Description Assignments ascending by due date, classified as submitted, overdue, urgent or upcoming
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]interface{} "timeline"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /students/{id}/timeline [get]
func (h *StudentHandler) GetStudentTimeline(c *gin.Context) {
	studentID := h.parseIDParam(c, "id")
	if studentID == 0 {
		return
	}

	timeline, err := h.service.Timeline(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": timeline})
}
