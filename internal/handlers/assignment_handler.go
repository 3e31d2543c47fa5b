package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

const attachmentField = "attachment_file"

type AssignmentHandler struct {
	BaseHandler
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	moduleID := h.parseIDParam(c, "id")
	if moduleID == 0 {
		return
	}

	assignments, err := h.service.ListByModule(c.Request.Context(), moduleID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	assignment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

// CreateAssignment accepts JSON or a multipart form with an optional attachment_file
// @Summary Create assignment
// @Description due_date accepts RFC3339 or a local ISO-8601 date-time; unparsable values are ignored
// @Tags assignments
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} map[string]interface{} "success, assignment_id"
// @Router /modules/{id}/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	moduleID := h.parseIDParam(c, "id")
	if moduleID == 0 {
		return
	}

	var req services.CreateAssignmentRequest
	if !h.bind(c, &req) {
		return
	}
	attachment, closeFile, ok := h.formFile(c, attachmentField)
	if !ok {
		return
	}
	defer closeFile()

	assignment, err := h.service.Create(c.Request.Context(), moduleID, &req, attachment)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "assignment_id": assignment.ID})
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateAssignmentRequest
	if !h.bind(c, &req) {
		return
	}
	attachment, closeFile, ok := h.formFile(c, attachmentField)
	if !ok {
		return
	}
	defer closeFile()

	if _, err := h.service.Update(c.Request.Context(), id, &req, attachment); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment updated"})
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment deleted"})
}
