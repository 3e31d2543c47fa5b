package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

const unknownStudentName = "Unknown"

type submissionService struct {
	repo      repositories.Repository
	media     MediaService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubmissionService(repo repositories.Repository, media MediaService, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) SubmissionService {
	return &submissionService{
		repo:      repo,
		media:     media,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Submit records a new submission. With both a file and a link the link is
// kept as text; a link alone becomes the file URL.
func (s *submissionService) Submit(ctx context.Context, assignmentID uint, req *SubmitAssignmentRequest, file *FileUpload) (*models.SubmissionView, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Assignment().GetByID(ctx, assignmentID); err != nil {
		return nil, notFoundAs(err, ErrAssignmentNotFound, "get assignment")
	}

	studentID := req.StudentID.Uint()
	exists, err := s.repo.User().ExistsByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
	}

	link := strings.TrimSpace(req.SubmissionLink)
	url, err := uploadOptional(ctx, s.media, file, repositories.FolderSubmissions)
	if err != nil {
		return nil, err
	}
	switch {
	case url != "":
		submission.FileURL = url
		submission.Text = link
	case link != "":
		submission.FileURL = link
	}

	if err := s.repo.Submission().Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("Submission created",
		"submission_id", submission.ID,
		"assignment_id", assignmentID,
		"student_id", studentID)

	publishEvent(ctx, s.publisher, s.logger, events.SubmissionCreated, events.SubmissionEvent{
		SubmissionID: submission.ID,
		AssignmentID: assignmentID,
		StudentID:    studentID,
	})

	view := models.NewSubmissionView(submission)
	return &view, nil
}

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID uint) ([]models.SubmissionView, error) {
	submissions, err := s.repo.Submission().ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	out := make([]models.SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := models.NewSubmissionView(sub)
		if view.StudentName == "" {
			view.StudentName = unknownStudentName
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *submissionService) GetMine(ctx context.Context, assignmentID, studentID uint) (*MySubmissionResponse, error) {
	if studentID == 0 {
		return nil, NewValidationError("student_id", "Student ID required")
	}

	submission, err := s.repo.Submission().GetLatest(ctx, assignmentID, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &MySubmissionResponse{Submitted: false}, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	view := models.NewSubmissionView(submission)
	return &MySubmissionResponse{Submitted: true, Submission: &view}, nil
}

// ===== GRADEBOOK =====

const gradebookSheet = "Submissions"

var gradebookHeader = []interface{}{
	"Submission ID", "Student ID", "Student", "File URL", "Text",
	"Submitted At", "Grade", "Feedback", "Graded At",
}

func (s *submissionService) ExportGradebook(ctx context.Context, assignmentID uint, w io.Writer) error {
	assignment, err := s.repo.Assignment().GetByID(ctx, assignmentID)
	if err != nil {
		return notFoundAs(err, ErrAssignmentNotFound, "get assignment")
	}

	rows, err := s.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", gradebookSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(gradebookSheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	if err := sw.SetRow("A1", []interface{}{assignment.Title}); err != nil {
		return fmt.Errorf("failed to write title row: %w", err)
	}
	if err := sw.SetRow("A2", gradebookHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, sub := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, gradebookRow(sub)); err != nil {
			return fmt.Errorf("failed to write submission %d: %w", sub.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Gradebook exported", "assignment_id", assignmentID, "rows", len(rows))
	return nil
}

func gradebookRow(sub models.SubmissionView) []interface{} {
	row := []interface{}{
		sub.ID, sub.StudentID, sub.StudentName, sub.FileURL, sub.Text,
		sub.SubmittedAt.UTC().Format("2006-01-02 15:04:05"), nil, sub.Feedback, nil,
	}
	if sub.Grade != nil {
		row[6] = *sub.Grade
	}
	if sub.GradedAt != nil {
		row[8] = sub.GradedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return row
}
