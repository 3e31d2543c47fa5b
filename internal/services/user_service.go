package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/course-service/internal/models"
	"github.com/SAP-F-2025/course-service/internal/repositories"
	"github.com/SAP-F-2025/course-service/internal/validator"
)

type userService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	bcryptCost int
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:       repo,
		logger:     logger,
		validator:  validator,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// ===== AUTH =====

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*models.UserSummary, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Role == "" {
		req.Role = models.RoleStudent
	}

	if errs := s.validator.GetBusinessValidator().ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	// The unique index on email settles concurrent registrations.
	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	summary := models.NewUserSummary(user)
	return &summary, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*models.UserSummary, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	summary := models.NewUserSummary(user)
	return &summary, nil
}

// ===== DIRECTORY =====

func (s *userService) GetByID(ctx context.Context, id uint) (*models.UserSummary, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound, "get user")
	}
	summary := models.NewUserSummary(user)
	return &summary, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]models.UserSummary, int64, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, models.NewUserSummary(u))
	}
	return out, total, nil
}
