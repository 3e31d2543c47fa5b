package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

type gradingService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	now       Clock
}

func NewGradingService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, clock Clock) GradingService {
	if clock == nil {
		clock = systemClock
	}
	return &gradingService{repo: repo, publisher: publisher, logger: logger, now: clock}
}

// ===== MANUAL GRADING =====

// Grade records the grade and feedback on a submission. An empty or null
// grade clears it; there is no range check. Feedback is replaced on every
// call, so an absent feedback clears it.
func (s *gradingService) Grade(ctx context.Context, submissionID uint, req *GradeSubmissionRequest) (*models.SubmissionView, error) {
	grade, err := parseGrade(req.Grade.Value)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Grading submission", "submission_id", submissionID, "grade", grade)

	var graded *models.Submission
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		submission, err := tx.Submission().GetByID(ctx, submissionID)
		if err != nil {
			return notFoundAs(err, ErrSubmissionNotFound, "get submission")
		}

		submission.Grade = grade
		if grade != nil {
			now := s.now()
			submission.GradedAt = &now
		} else {
			submission.GradedAt = nil
		}
		submission.Feedback = ""
		if req.Feedback != nil {
			submission.Feedback = *req.Feedback
		}

		if err := tx.Submission().Update(ctx, submission); err != nil {
			return fmt.Errorf("failed to update submission grade: %w", err)
		}
		graded = submission
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, events.SubmissionGraded, events.SubmissionEvent{
		SubmissionID: graded.ID,
		AssignmentID: graded.AssignmentID,
		StudentID:    graded.StudentID,
		Grade:        graded.Grade,
	})

	view := models.NewSubmissionView(graded)
	return &view, nil
}

// parseGrade accepts a JSON number, a numeric string, or nothing.
func parseGrade(raw interface{}) (*float64, error) {
	var value float64
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		value = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, ErrInvalidGrade
		}
		value = f
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, ErrInvalidGrade
		}
		value = f
	default:
		return nil, ErrInvalidGrade
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, ErrInvalidGrade
	}
	return &value, nil
}
