package model

import (
	"time"

	"gorm.io/datatypes"
)

// swagger:model User
type User struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string         `gorm:"size:100;not null" json:"-"`
	FirstName      *string        `gorm:"size:100" json:"first_name"`
	LastName       *string        `gorm:"size:100" json:"last_name"`
	DateOfBirth    *time.Time     `json:"date_of_birth"`
	ProfilePicture *string        `gorm:"size:255" json:"profile_picture"`
	Preferences    datatypes.JSON `json:"preferences"`
	// registration_date 对应原注册时间
	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UpdatedAt        time.Time `json:"-"`

	Scores []ScoreRecord `gorm:"constraint:OnDelete:CASCADE" json:"scores,omitempty"`
}

func (User) TableName() string {
	return "users"
}
