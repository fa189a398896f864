package models

import "time"

// TargetKind tags which account table a notification or award recipient id refers to.
type TargetKind string

const (
	TargetUser TargetKind = "user"
	TargetClub TargetKind = "club"
)

func (k TargetKind) Valid() bool {
	return k == TargetUser || k == TargetClub
}

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

func (s NotificationStatus) Valid() bool {
	return s == NotificationUnread || s == NotificationRead
}

type Notification struct {
	ID         uint64             `gorm:"primarykey" json:"id"`
	TargetKind TargetKind         `gorm:"type:varchar(10);not null;index:idx_notifications_target,priority:1" json:"target_kind"`
	TargetID   uint64             `gorm:"not null;index:idx_notifications_target,priority:2" json:"target_id"`
	Type       string             `gorm:"type:varchar(50);not null;index" json:"type"`
	Content    string             `gorm:"type:text;not null" json:"content"`
	Status     NotificationStatus `gorm:"type:varchar(10);not null;default:'unread'" json:"status"`
	CreatedAt  time.Time          `gorm:"index" json:"created_at"`
}
