package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

const thumbnailField = "thumbnail_file"

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListCourses returns the public catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Param search query string false "Case-insensitive title filter"
// @Success 200 {object} map[string]interface{} "courses"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	search := c.Query("search")
	h.LogRequest(c, "Listing courses", "search", search)

	courses, err := h.service.List(c.Request.Context(), search)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// GetCourse returns one course
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{} "course"
// @Failure 404 {object} ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	course, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"course": course})
}

// CreateCourse accepts JSON or a multipart form with an optional thumbnail_file
// @Summary Create course
// @Tags courses
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} map[string]interface{} "success, course"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if !h.bind(c, &req) {
		return
	}
	thumbnail, closeFile, ok := h.formFile(c, thumbnailField)
	if !ok {
		return
	}
	defer closeFile()

	h.LogRequest(c, "Creating course", "title", req.Title)

	course, err := h.service.Create(c.Request.Context(), &req, thumbnail)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateCourseRequest
	if !h.bind(c, &req) {
		return
	}
	thumbnail, closeFile, ok := h.formFile(c, thumbnailField)
	if !ok {
		return
	}
	defer closeFile()

	course, err := h.service.Update(c.Request.Context(), id, &req, thumbnail)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course deleted"})
}

// ListInstructorCourses returns the courses taught by an instructor
// @Summary List instructor courses
// @Tags courses
// @Produce json
// @Param id path int true "Instructor ID"
// @Success 200 {object} map[string]interface{} "courses"
// @Router /instructors/{id}/courses [get]
func (h *CourseHandler) ListInstructorCourses(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	courses, err := h.service.ListByInstructor(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) ListCourseStudents(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	resp, err := h.service.ListStudents(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
