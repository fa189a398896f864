package models

import "time"

type Club struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Description  string    `gorm:"type:text" json:"description"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	Picture      string    `gorm:"type:varchar(512)" json:"picture"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Events       []Event           `gorm:"foreignKey:ClubID" json:"-"`
	Achievements []ClubAchievement `gorm:"foreignKey:ClubID" json:"-"`
}
