package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

func TestSubmit_LinkAndFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Submission()

	student := env.user(t, "Sam", models.RoleStudent)
	a := env.assignment(t, env.module(t, env.course(t, nil, "Go", nil), "M", 1), "Essay", nil)

	linkOnly, err := svc.Submit(ctx, a.ID, &SubmitAssignmentRequest{
		StudentID:      validator.FlexID(student.ID),
		SubmissionLink: "https://github.com/sam/essay",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/sam/essay", linkOnly.FileURL)
	assert.Empty(t, linkOnly.Text)

	both, err := svc.Submit(ctx, a.ID, &SubmitAssignmentRequest{
		StudentID:      validator.FlexID(student.ID),
		SubmissionLink: "https://github.com/sam/essay",
	}, &FileUpload{Reader: strings.NewReader("pdf"), Filename: "essay.pdf"})
	require.NoError(t, err)
	assert.Contains(t, both.FileURL, repositories.FolderSubmissions)
	assert.Equal(t, "https://github.com/sam/essay", both.Text)

	require.Len(t, env.media.uploads, 1)
	assert.Equal(t, repositories.ResourceAuto, env.media.uploads[0].ResourceType)
	assert.Len(t, env.publisher.EventsOfType(events.SubmissionCreated), 2)

	mine, err := svc.GetMine(ctx, a.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, mine.Submitted)
	assert.Equal(t, both.ID, mine.Submission.ID)
}

func TestSubmit_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Submission()
	student := env.user(t, "Sam", models.RoleStudent)

	_, err := svc.Submit(ctx, 404, &SubmitAssignmentRequest{StudentID: validator.FlexID(student.ID)}, nil)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	a := env.assignment(t, env.module(t, env.course(t, nil, "Go", nil), "M", 1), "Essay", nil)
	_, err = svc.Submit(ctx, a.ID, &SubmitAssignmentRequest{}, nil)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGetMine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Submission()
	student := env.user(t, "Sam", models.RoleStudent)
	a := env.assignment(t, env.module(t, env.course(t, nil, "Go", nil), "M", 1), "Essay", nil)

	mine, err := svc.GetMine(ctx, a.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, mine.Submitted)
	assert.Nil(t, mine.Submission)

	_, err = svc.GetMine(ctx, a.ID, 0)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Student ID required", verrs[0].Message)
}

func TestListByAssignment_StudentNames(t *testing.T) {
	env := newTestEnv(t)
	student := env.user(t, "Sam", models.RoleStudent)
	a := env.assignment(t, env.module(t, env.course(t, nil, "Go", nil), "M", 1), "Essay", nil)
	env.submission(t, a, student, nil)

	list, err := env.manager.Submission().ListByAssignment(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sam", list[0].StudentName)
}

func TestExportGradebook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.user(t, "Ann", models.RoleStudent)
	ben := env.user(t, "Ben", models.RoleStudent)
	a := env.assignment(t, env.module(t, env.course(t, nil, "Go", nil), "M", 1), "Essay", nil)
	env.submission(t, a, ann, floatPtr(88))
	env.submission(t, a, ben, nil)

	var buf bytes.Buffer
	require.NoError(t, env.manager.Submission().ExportGradebook(ctx, a.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(gradebookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Essay", rows[0][0])
	assert.Equal(t, "Student", rows[1][2])

	names := []string{rows[2][2], rows[3][2]}
	assert.ElementsMatch(t, []string{"Ann", "Ben"}, names)

	err = env.manager.Submission().ExportGradebook(ctx, 999, &buf)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}
