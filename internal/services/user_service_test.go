package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.manager.User()

	user, err := svc.Register(ctx, &RegisterRequest{Name: " Sam ", Email: "sam@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "Sam", user.Name)
	assert.Equal(t, models.RoleStudent, user.Role)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret", stored.PasswordHash)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "Other", Email: "sam@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, err := svc.Login(ctx, &LoginRequest{Email: "sam@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, &LoginRequest{Email: "sam@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, req := range []*RegisterRequest{
		{Email: "a@example.com", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@example.com"},
		{Name: "A", Email: "not-an-email", Password: "x"},
		{Name: "A", Email: "a@example.com", Password: "x", Role: "superuser"},
	} {
		_, err := env.manager.User().Register(ctx, req)
		var verrs ValidationErrors
		assert.ErrorAs(t, err, &verrs, "%+v", req)
	}
}

func TestUserDirectory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "Ann", models.RoleStudent)
	instructor := env.user(t, "Tess", models.RoleInstructor)

	users, total, err := env.manager.User().List(ctx, repositories.UserFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	got, err := env.manager.User().GetByID(ctx, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, got.Role)

	_, err = env.manager.User().GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestServiceManager_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.HealthCheck(ctx))

	unstarted := NewServiceManager(ServiceDependencies{Repo: env.repo, Logger: env.logger}, DefaultServiceManagerConfig())
	assert.Panics(t, func() { unstarted.Course() })
	assert.Error(t, unstarted.HealthCheck(ctx))

	disabled := DefaultServiceManagerConfig()
	disabled.Reminder.Enabled = false
	noReminder := NewServiceManager(ServiceDependencies{Repo: env.repo, Logger: env.logger}, disabled)
	require.NoError(t, noReminder.Initialize(ctx))
	assert.Panics(t, func() { noReminder.Reminder() })
	assert.NotPanics(t, func() { noReminder.Media() })
}
