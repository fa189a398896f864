package models

import "time"

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Points       int64     `gorm:"not null;default:0" json:"points"`
	Picture      string    `gorm:"type:varchar(512)" json:"picture"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	RSVPs        []RSVP            `gorm:"foreignKey:UserID" json:"-"`
	Attendances  []Attendance      `gorm:"foreignKey:UserID" json:"-"`
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"-"`
}
