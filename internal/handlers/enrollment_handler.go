package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type EnrollmentHandler struct {
	BaseHandler
	service services.EnrollmentService
}

func NewEnrollmentHandler(service services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Enroll adds a student to a course
// @Summary Enroll in course
// @Description Locked courses require the exact enrollment_key
// @Tags enrollments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "success"
// @Failure 400 {object} ErrorResponse "Already enrolled"
// @Failure 403 {object} ErrorResponse "Invalid Enrollment Key"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Router /enroll [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if !h.bind(c, &req) {
		return
	}

	h.LogRequest(c, "Enrolling student", "student_id", req.StudentID, "course_id", req.CourseID)

	if err := h.service.Enroll(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	var req services.UnenrollRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.Unenroll(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unenrolled from course"})
}

// CompleteLesson marks a lesson complete; repeating the call is harmless
// @Summary Complete lesson
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]interface{} "success, message"
// @Failure 404 {object} ErrorResponse "Lesson not found"
// @Router /lessons/{id}/complete [post]
func (h *EnrollmentHandler) CompleteLesson(c *gin.Context) {
	lessonID := h.parseIDParam(c, "id")
	if lessonID == 0 {
		return
	}

	var req validator.CompleteLessonRequest
	if !h.bind(c, &req) {
		return
	}

	created, err := h.service.CompleteLesson(c.Request.Context(), lessonID, req.StudentID.Uint())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Lesson marked as complete"
	if !created {
		message = "Already completed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
