package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

const materialField = "file_material"

type LessonHandler struct {
	BaseHandler
	service services.LessonService
}

func NewLessonHandler(service services.LessonService, logger utils.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	moduleID := h.parseIDParam(c, "id")
	if moduleID == 0 {
		return
	}

	lessons, err := h.service.ListByModule(c.Request.Context(), moduleID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GetLesson returns a lesson with its course id
// @Summary Get lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Param student_id query int false "Report completion for this student"
// @Success 200 {object} map[string]interface{} "lesson"
// @Failure 404 {object} ErrorResponse "Lesson not found"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	lesson, err := h.service.GetByID(c.Request.Context(), id, optionalUint(c.Query("student_id")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

// CreateLesson accepts JSON or a multipart form; a file_material upload
// replaces video_url.
// @Summary Create lesson
// @Tags lessons
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} map[string]interface{} "success, lesson"
// @Router /modules/{id}/lessons [post]
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	moduleID := h.parseIDParam(c, "id")
	if moduleID == 0 {
		return
	}

	var req services.CreateLessonRequest
	if !h.bind(c, &req) {
		return
	}
	material, closeFile, ok := h.formFile(c, materialField)
	if !ok {
		return
	}
	defer closeFile()

	lesson, err := h.service.Create(c.Request.Context(), moduleID, &req, material)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "lesson": lesson})
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateLessonRequest
	if !h.bind(c, &req) {
		return
	}
	material, closeFile, ok := h.formFile(c, materialField)
	if !ok {
		return
	}
	defer closeFile()

	lesson, err := h.service.Update(c.Request.Context(), id, &req, material)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lesson updated", "lesson": lesson})
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lesson deleted"})
}
