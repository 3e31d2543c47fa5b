package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/course-service/internal/models"
)

func TestStudentCourses_ProgressAndDeadline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	instructor := env.user(t, "Tess", models.RoleInstructor)
	student := env.user(t, "Sam", models.RoleStudent)

	course := env.course(t, instructor, "Go", nil)
	mod := env.module(t, course, "Basics", 1)
	l1 := env.lesson(t, mod, "Intro", 1)
	env.lesson(t, mod, "Types", 2)
	past := env.assignment(t, mod, "Past", timePtr(testNow.Add(-48*time.Hour)))
	env.assignment(t, mod, "Later", timePtr(testNow.Add(96*time.Hour)))
	env.assignment(t, mod, "Soon", timePtr(testNow.Add(24*time.Hour)))

	empty := env.course(t, instructor, "Empty", nil)

	env.enroll(t, student, course)
	env.enroll(t, student, empty)
	env.complete(t, student, l1)
	env.submission(t, past, student, nil)
	env.submission(t, past, student, nil)

	courses, err := env.manager.Student().ListCourses(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	byID := map[uint]StudentCourse{}
	for _, c := range courses {
		byID[c.ID] = c
	}

	goCourse := byID[course.ID]
	// 1 lesson + 1 distinct assignment out of 2 lessons + 3 assignments.
	assert.Equal(t, 40.0, goCourse.Progress)
	require.NotNil(t, goCourse.Deadline)
	assert.True(t, goCourse.Deadline.Equal(testNow.Add(24*time.Hour)))
	require.NotNil(t, goCourse.NextTaskTitle)
	assert.Equal(t, "Soon", *goCourse.NextTaskTitle)
	require.NotNil(t, goCourse.InstructorName)
	assert.Equal(t, "Tess", *goCourse.InstructorName)

	emptyCourse := byID[empty.ID]
	assert.Equal(t, 0.0, emptyCourse.Progress)
	assert.Nil(t, emptyCourse.Deadline)
	assert.Nil(t, emptyCourse.NextTaskTitle)
}

func TestStudentCourses_UnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.manager.Student().ListCourses(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.manager.Student().Timeline(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTimeline(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.user(t, "Sam", models.RoleStudent)
	course := env.course(t, nil, "Go", nil)
	other := env.course(t, nil, "Not enrolled", nil)
	mod := env.module(t, course, "Basics", 1)

	upcoming := env.assignment(t, mod, "Upcoming", timePtr(testNow.Add(10*24*time.Hour)))
	urgent := env.assignment(t, mod, "Urgent", timePtr(testNow.Add(2*24*time.Hour)))
	overdue := env.assignment(t, mod, "Overdue", timePtr(testNow.Add(-24*time.Hour)))
	done := env.assignment(t, mod, "Done late", timePtr(testNow.Add(-5*24*time.Hour)))
	env.assignment(t, mod, "Undated", nil)
	env.assignment(t, env.module(t, other, "Other", 1), "Foreign", timePtr(testNow.Add(24*time.Hour)))

	env.enroll(t, student, course)
	env.submission(t, done, student, floatPtr(90))

	items, err := env.manager.Student().Timeline(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, done.ID, items[0].ID)
	assert.Equal(t, StatusSubmitted, items[0].Status)

	assert.Equal(t, overdue.ID, items[1].ID)
	assert.Equal(t, StatusOverdue, items[1].Status)

	assert.Equal(t, urgent.ID, items[2].ID)
	assert.Equal(t, StatusUrgent, items[2].Status)
	assert.Equal(t, 2, items[2].DaysLeft)
	assert.Equal(t, "Go", items[2].CourseTitle)
	assert.Equal(t, "Basics", items[2].ModuleTitle)
	assert.Equal(t, course.ID, items[2].CourseID)

	assert.Equal(t, upcoming.ID, items[3].ID)
	assert.Equal(t, StatusUpcoming, items[3].Status)
	assert.Equal(t, 10, items[3].DaysLeft)
}

func TestTimeline_NoEnrollments(t *testing.T) {
	env := newTestEnv(t)
	student := env.user(t, "Sam", models.RoleStudent)

	items, err := env.manager.Student().Timeline(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}
