package services

import (
	"context"
	"fmt"

	"github.com/akarwowski/lingocards-backend/internal/pkg/logger"
	"github.com/akarwowski/lingocards-backend/internal/repos"
	"github.com/akarwowski/lingocards-backend/internal/types"
)

type UserService interface {
	GetProfile(ctx context.Context, identity string) (*types.User, error)
	UpdateDailyGoal(ctx context.Context, identity string, goal int) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{log: serviceLog, userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, identity string) (*types.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []string{identity})
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s not found", identity)
	}
	return users[0], nil
}

func (s *userService) UpdateDailyGoal(ctx context.Context, identity string, goal int) error {
	if goal <= 0 {
		return fmt.Errorf("daily goal must be positive")
	}
	if err := s.userRepo.UpdateDailyGoal(ctx, nil, identity, goal); err != nil {
		return fmt.Errorf("updating daily goal: %w", err)
	}
	return nil
}
