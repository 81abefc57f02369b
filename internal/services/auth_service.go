package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/models"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenService
	validator *validator.Validator
	events    events.EventPublisher
	logger    *slog.Logger
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenService,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		validator: v,
		events:    publisher,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterUserRequest, actor *models.User) (*models.User, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, newValidationError(verrs)
	}

	// Only an admin-privileged actor may assign a non-default role
	role := models.RoleUser
	if req.Role != "" {
		if actor == nil || !actor.Role.Satisfies(models.RoleAdmin) {
			return nil, ErrForbidden
		}
		role = req.Role
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		// The unique index is the safety net for the check-then-write race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	s.publishEvent(ctx, events.NewEvent(events.TypeUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}))

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if verrs := s.validator.Validate(req); verrs.HasErrors() {
		return nil, newValidationError(verrs)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		// A token for a deleted user is no longer a valid credential
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}

	return user, nil
}

func (s *authService) Authorize(user *models.User, required models.UserRole) error {
	if user == nil {
		return ErrUnauthorized
	}
	if !user.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}

// publishEvent sends a domain event; failures are logged, not returned.
func (s *authService) publishEvent(ctx context.Context, event events.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}
