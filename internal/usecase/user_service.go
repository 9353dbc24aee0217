package usecase

import (
	"context"
	"fmt"

	"github.com/jverhelst/scorecast/internal/domain/user"
)

// UserService manages participant registration and reminder preferences.
type UserService struct {
	userRepo user.Repository
}

func NewUserService(userRepo user.Repository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Register(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := s.userRepo.Register(ctx, userID); err != nil {
		return fmt.Errorf("register user %s: %w", userID, err)
	}
	return nil
}

func (s *UserService) SetReminderEnabled(ctx context.Context, userID string, enabled bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.SetReminderEnabled")
	defer span.End()

	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if err := s.userRepo.SetReminderEnabled(ctx, userID, enabled); err != nil {
		return fmt.Errorf("set reminder flag for user %s: %w", userID, err)
	}
	return nil
}
