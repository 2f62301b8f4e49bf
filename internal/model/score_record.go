package model

import (
	"time"

	"gorm.io/datatypes"
)

// ScoreRecord 存储一次已评分的提交，创建后不再修改
// swagger:model ScoreRecord
type ScoreRecord struct {
	ID      uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint           `gorm:"index;not null" json:"user_id"`
	Score   float64        `gorm:"not null" json:"score"`
	Date    time.Time      `gorm:"index;not null" json:"date"`
	Details datatypes.JSON `gorm:"not null" json:"details"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}
