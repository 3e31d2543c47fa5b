package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetInstructorDashboard returns the instructor's course tree with ungraded counts
// @Summary Get instructor dashboard
// @Description Courses newest first, modules in sort order, and needs_grading_count per assignment
// @Tags dashboard
// @Produce json
// @Param instructor_id query int false "Instructor ID (defaults to the X-User-ID header)"
// @Success 200 {object} services.DashboardResponse
// @Failure 400 {object} ErrorResponse "Instructor ID required"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /instructor/dashboard [get]
func (h *DashboardHandler) GetInstructorDashboard(c *gin.Context) {
	instructorID := optionalUint(c.Query("instructor_id"))
	if instructorID == 0 {
		instructorID = callerID(c)
	}
	if instructorID == 0 {
		h.abort(c, http.StatusBadRequest, "Instructor ID required")
		return
	}

	h.LogRequest(c, "Getting instructor dashboard", "instructor_id", instructorID)

	dashboard, err := h.service.GetInstructorDashboard(c.Request.Context(), instructorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
