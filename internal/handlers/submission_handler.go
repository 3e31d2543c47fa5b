package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/course-service/internal/services"
	"github.com/SAP-F-2025/course-service/internal/utils"
)

const (
	submissionField = "submission_file"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type SubmissionHandler struct {
	BaseHandler
	submissions services.SubmissionService
	grading     services.GradingService
}

func NewSubmissionHandler(submissions services.SubmissionService, grading services.GradingService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
		grading:     grading,
	}
}

// SubmitAssignment stores a student's work
// @Summary Submit assignment
// @Description A submission_file upload plus a submission_link keeps both; a link alone is stored as the file URL
// @Tags submissions
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} map[string]interface{} "success, message"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /assignments/{id}/submissions [post]
func (h *SubmissionHandler) SubmitAssignment(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	var req services.SubmitAssignmentRequest
	if !h.bind(c, &req) {
		return
	}
	file, closeFile, ok := h.formFile(c, submissionField)
	if !ok {
		return
	}
	defer closeFile()

	h.LogRequest(c, "Submitting assignment", "assignment_id", assignmentID, "student_id", req.StudentID)

	if _, err := h.submissions.Submit(c.Request.Context(), assignmentID, &req, file); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Assignment submitted successfully"})
}

func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	submissions, err := h.submissions.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

// GetMySubmission returns the student's latest submission or {submitted: false}
// @Summary Get my submission
// @Tags submissions
// @Produce json
// @Param id path int true "Assignment ID"
// @Param student_id query int true "Student ID"
// @Success 200 {object} services.MySubmissionResponse
// @Failure 400 {object} ErrorResponse "Student ID required"
// @Router /assignments/{id}/my_submission [get]
func (h *SubmissionHandler) GetMySubmission(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	resp, err := h.submissions.GetMine(c.Request.Context(), assignmentID, optionalUint(c.Query("student_id")))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GradeSubmission sets or clears a grade
// @Summary Grade submission
// @Description An empty or null grade clears it; anything else must be numeric
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} map[string]interface{} "success, message"
// @Failure 400 {object} ErrorResponse "Grade must be a number"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Router /submissions/{id}/grade [post]
func (h *SubmissionHandler) GradeSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.GradeSubmissionRequest
	if !h.bind(c, &req) {
		return
	}

	h.LogRequest(c, "Grading submission", "submission_id", id)

	if _, err := h.grading.Grade(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Grade saved"})
}

// ExportGradebook downloads the assignment's submissions as a workbook
// @Summary Export gradebook
// @Tags submissions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Assignment ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Router /assignments/{id}/gradebook.xlsx [get]
func (h *SubmissionHandler) ExportGradebook(c *gin.Context) {
	assignmentID := h.parseIDParam(c, "id")
	if assignmentID == 0 {
		return
	}

	var buf bytes.Buffer
	if err := h.submissions.ExportGradebook(c.Request.Context(), assignmentID, &buf); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="assignment-%d-gradebook.xlsx"`, assignmentID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
