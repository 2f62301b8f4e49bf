package service

import (
	"calibration_quiz/internal/model"
	"calibration_quiz/internal/quiz"
	"calibration_quiz/internal/repository"
	"calibration_quiz/internal/util"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ScoreService persists scored submissions against an authenticated identity.
type ScoreService struct {
	UserRepo  *repository.UserRepository
	ScoreRepo *repository.ScoreRepository
	now       func() time.Time
}

func NewScoreService(userRepo *repository.UserRepository, scoreRepo *repository.ScoreRepository) *ScoreService {
	return &ScoreService{
		UserRepo:  userRepo,
		ScoreRepo: scoreRepo,
		now:       time.Now,
	}
}

// Record stores result for the identity's user and returns the stored record.
func (s *ScoreService) Record(ctx context.Context, id util.Identity, result *quiz.ScoredResult) (*model.ScoreRecord, error) {
	user, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := json.Marshal(result.Details)
	if err != nil {
		return nil, err
	}

	record := &model.ScoreRecord{
		UserID:  user.ID,
		Score:   float64(result.Score),
		Date:    s.now().UTC(),
		Details: datatypes.JSON(details),
	}
	if err := s.ScoreRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns the identity's score records, newest first.
func (s *ScoreService) History(ctx context.Context, id util.Identity) ([]model.ScoreRecord, error) {
	user, err := s.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	records, err := s.ScoreRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.ScoreRecord{}
	}
	return records, nil
}

// resolve maps an identity to its user. A session that outlived its user is
// treated as unauthenticated.
func (s *ScoreService) resolve(ctx context.Context, id util.Identity) (*model.User, error) {
	if !id.IsAuthenticated || id.Username == "" {
		return nil, util.ErrUnauthorized
	}
	user, err := s.UserRepo.FindByUsername(ctx, id.Username)
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: unknown user %q", util.ErrUnauthorized, id.Username)
	}
	return user, err
}
