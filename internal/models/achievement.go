package models

import "time"

type Achievement struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Badge          string    `gorm:"type:varchar(512)" json:"badge"`
	PointsRequired int64     `gorm:"not null;default:0" json:"points_required"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ClubAchievement struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ClubID        uint64    `gorm:"not null;uniqueIndex:idx_club_achievements_pair,priority:1" json:"club_id"`
	AchievementID uint64    `gorm:"not null;uniqueIndex:idx_club_achievements_pair,priority:2;index" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`

	// Relations
	Club        Club        `gorm:"foreignKey:ClubID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

type UserAchievement struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	UserID        uint64    `gorm:"not null;uniqueIndex:idx_user_achievements_pair,priority:1" json:"user_id"`
	AchievementID uint64    `gorm:"not null;uniqueIndex:idx_user_achievements_pair,priority:2;index" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`

	// Relations
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
