package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/course-service/internal/events"
	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

func enrollReq(studentID, courseID uint, key *string) *EnrollRequest {
	return &EnrollRequest{
		StudentID:     validator.FlexID(studentID),
		CourseID:      validator.FlexID(courseID),
		EnrollmentKey: key,
	}
}

func TestEnroll_LockedCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Enrollment()

	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", strPtr("ABC123"))

	err := svc.Enroll(ctx, enrollReq(student.ID, course.ID, strPtr("wrong")))
	assert.ErrorIs(t, err, ErrInvalidEnrollmentKey)

	err = svc.Enroll(ctx, enrollReq(student.ID, course.ID, nil))
	assert.ErrorIs(t, err, ErrInvalidEnrollmentKey)

	require.NoError(t, svc.Enroll(ctx, enrollReq(student.ID, course.ID, strPtr("ABC123"))))

	err = svc.Enroll(ctx, enrollReq(student.ID, course.ID, strPtr("ABC123")))
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	assert.Len(t, env.publisher.EventsOfType(events.EnrollmentCreated), 1)
}

func TestEnroll_SecondEnrollmentConflictsRegardlessOfKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Enrollment()

	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", strPtr("ABC123"))
	env.enroll(t, student, course)

	err := svc.Enroll(ctx, enrollReq(student.ID, course.ID, strPtr("wrong")))
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnroll_OpenCourseIgnoresKey(t *testing.T) {
	env := newTestEnv(t)
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)

	require.NoError(t, env.manager.Enrollment().Enroll(context.Background(), enrollReq(student.ID, course.ID, strPtr("anything"))))

	var count int64
	env.db.Model(&models.Enrollment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnroll_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Enrollment()
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)

	assert.ErrorIs(t, svc.Enroll(ctx, enrollReq(student.ID, 999, nil)), ErrCourseNotFound)
	assert.ErrorIs(t, svc.Enroll(ctx, enrollReq(999, course.ID, nil)), ErrUserNotFound)

	var verrs ValidationErrors
	assert.True(t, errors.As(svc.Enroll(ctx, enrollReq(0, course.ID, nil)), &verrs))
}

func TestUnenroll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Enrollment()
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)
	env.enroll(t, student, course)

	req := &UnenrollRequest{UserID: validator.FlexID(student.ID), CourseID: validator.FlexID(course.ID)}
	require.NoError(t, svc.Unenroll(ctx, req))
	assert.ErrorIs(t, svc.Unenroll(ctx, req), ErrEnrollmentNotFound)

	var verrs ValidationErrors
	assert.True(t, errors.As(svc.Unenroll(ctx, &UnenrollRequest{CourseID: validator.FlexID(course.ID)}), &verrs))

	assert.Len(t, env.publisher.EventsOfType(events.EnrollmentDeleted), 1)
}

func TestCompleteLesson_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.Enrollment()
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)
	lesson := env.lesson(t, env.module(t, course, "Basics", 1), "Intro", 1)

	created, err := svc.CompleteLesson(ctx, lesson.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CompleteLesson(ctx, lesson.ID, student.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	env.db.Model(&models.LessonCompletion{}).Count(&count)
	assert.Equal(t, int64(1), count)

	published := env.publisher.EventsOfType(events.LessonCompleted)
	require.Len(t, published, 1)
	assert.Equal(t, course.ID, published[0].Data.(events.LessonCompletedEvent).CourseID)

	_, err = svc.CompleteLesson(ctx, 999, student.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)

	_, err = svc.CompleteLesson(ctx, lesson.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	env.db.Model(&models.LessonCompletion{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnroll_PublishFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.FailWith(errors.New("broker down"))
	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)

	assert.NoError(t, env.manager.Enrollment().Enroll(context.Background(), enrollReq(student.ID, course.ID, nil)))
}
