package models

import "time"

// PointsAward records that points for an event were paid to one recipient.
// The unique key makes repeated award calls for the same recipient a no-op.
type PointsAward struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	EventID       uint64     `gorm:"not null;uniqueIndex:idx_points_awards_recipient,priority:1" json:"event_id"`
	RecipientKind TargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_points_awards_recipient,priority:2" json:"recipient_kind"`
	RecipientID   uint64     `gorm:"not null;uniqueIndex:idx_points_awards_recipient,priority:3" json:"recipient_id"`
	Points        int64      `gorm:"not null" json:"points"`
	CreatedAt     time.Time  `json:"created_at"`
}
