package repository

import (
	"calibration_quiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Create(ctx context.Context, record *model.ScoreRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// ListByUser returns a user's score records, newest first.
func (r *ScoreRepository) ListByUser(ctx context.Context, userID uint) ([]model.ScoreRecord, error) {
	var records []model.ScoreRecord
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&records).Error
	return records, err
}

func (r *ScoreRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ScoreRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
