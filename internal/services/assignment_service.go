package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

// dueDateLayouts are tried in order. Layouts without a zone are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDueDate reports ok=false for values that match no layout.
func parseDueDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

type assignmentService struct {
	repo      repositories.Repository
	media     MediaService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssignmentService(repo repositories.Repository, media MediaService, logger *slog.Logger, validator *validator.Validator) AssignmentService {
	return &assignmentService{repo: repo, media: media, logger: logger, validator: validator}
}

func (s *assignmentService) ListByModule(ctx context.Context, moduleID uint) ([]AssignmentResponse, error) {
	assignments, err := s.repo.Assignment().ListByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, newAssignmentResponse(a))
	}
	return out, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id uint) (*AssignmentResponse, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrAssignmentNotFound, "get assignment")
	}
	resp := newAssignmentResponse(assignment)
	return &resp, nil
}

func (s *assignmentService) Create(ctx context.Context, moduleID uint, req *CreateAssignmentRequest, attachment *FileUpload) (*AssignmentResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Module().GetByID(ctx, moduleID); err != nil {
		return nil, notFoundAs(err, ErrModuleNotFound, "get module")
	}

	assignment := &models.Assignment{
		ModuleID:    moduleID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		LinkURL:     req.LinkURL,
	}
	if due, ok := parseDueDate(req.DueDate.String()); ok {
		assignment.DueDate = &due
	} else if req.DueDate.String() != "" {
		s.logger.Info("Ignoring unparsable due date", "due_date", req.DueDate.String())
	}

	url, err := uploadOptional(ctx, s.media, attachment, repositories.FolderAssignments)
	if err != nil {
		return nil, err
	}
	assignment.AttachmentURL = url

	if err := s.repo.Assignment().Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created", "assignment_id", assignment.ID, "module_id", moduleID)
	resp := newAssignmentResponse(assignment)
	return &resp, nil
}

// Update applies non-empty fields. A present but empty (or null) due date
// clears it; an unparsable one leaves it untouched.
func (s *assignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest, attachment *FileUpload) (*AssignmentResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	url, err := uploadOptional(ctx, s.media, attachment, repositories.FolderAssignments)
	if err != nil {
		return nil, err
	}

	var updated *models.Assignment
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		assignment, err := tx.Assignment().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrAssignmentNotFound, "get assignment")
		}

		if title := strings.TrimSpace(req.Title); title != "" {
			assignment.Title = title
		}
		if req.Description != "" {
			assignment.Description = req.Description
		}
		if req.LinkURL.Set {
			assignment.LinkURL = req.LinkURL.String()
		}
		if req.DueDate.Set {
			raw := strings.TrimSpace(req.DueDate.String())
			if raw == "" {
				assignment.DueDate = nil
			} else if due, ok := parseDueDate(raw); ok {
				assignment.DueDate = &due
			}
		}
		if url != "" {
			assignment.AttachmentURL = url
		}

		if err := tx.Assignment().Update(ctx, assignment); err != nil {
			return err
		}
		updated = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := newAssignmentResponse(updated)
	return &resp, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Assignment().Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrAssignmentNotFound, "delete assignment")
	}
	s.logger.Info("Assignment deleted", "assignment_id", id)
	return nil
}
