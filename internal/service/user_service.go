package service

import (
	"calibration_quiz/internal/model"
	"calibration_quiz/internal/repository"
	"calibration_quiz/internal/util"
	"calibration_quiz/pkg/logger"
	"context"

	"go.uber.org/zap"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// Profile returns the identity's user with its score history.
func (s *UserService) Profile(ctx context.Context, id util.Identity) (*model.User, error) {
	if !id.IsAuthenticated {
		return nil, util.ErrUnauthorized
	}
	return s.UserRepo.FindWithScores(ctx, id.Username)
}

// DeleteAccount removes the identity's user and every score record it owns.
func (s *UserService) DeleteAccount(ctx context.Context, id util.Identity) error {
	if !id.IsAuthenticated {
		return util.ErrUnauthorized
	}
	user, err := s.UserRepo.FindByUsername(ctx, id.Username)
	if err != nil {
		return err
	}
	if err := s.UserRepo.DeleteWithScores(ctx, user.ID); err != nil {
		return err
	}
	logger.Log.Info("account deleted", zap.String("username", id.Username), zap.Uint("user_id", user.ID))
	return nil
}

func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	return s.UserRepo.ExistsByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.List(ctx)
}
