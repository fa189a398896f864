package dto

import (
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
)

// NotificationDTO is the notification wire shape consumed by the frontend.
// UserID carries the target id for both kinds; TargetKind tells them apart.
type NotificationDTO struct {
	ID         uint64                    `json:"notifid"`
	UserID     uint64                    `json:"userid"`
	TargetKind models.TargetKind         `json:"targetkind"`
	Type       string                    `json:"notiftype"`
	Content    string                    `json:"notifcontent"`
	Status     models.NotificationStatus `json:"notifstatus"`
	CreatedAt  time.Time                 `json:"createdat"`
}

// BroadcastDTO is pushed to every connection for event changes.
type BroadcastDTO struct {
	Type    string `json:"notiftype"`
	Content string `json:"notifcontent"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		UserID:     n.TargetID,
		TargetKind: n.TargetKind,
		Type:       n.Type,
		Content:    n.Content,
		Status:     n.Status,
		CreatedAt:  n.CreatedAt,
	}
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(items []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, len(items))
	for i, n := range items {
		out[i] = ToNotificationDTO(n)
	}
	return out
}
