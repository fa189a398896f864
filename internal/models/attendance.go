package models

import "time"

type AttendanceStatus string

const (
	AttendanceStatusYes AttendanceStatus = "yes"
	AttendanceStatusNo  AttendanceStatus = "no"
)

const DefaultAttendanceMethod = "manual"

// Valid reports whether s is one of the accepted attendance values.
func (s AttendanceStatus) Valid() bool {
	return s == AttendanceStatusYes || s == AttendanceStatusNo
}

type Attendance struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	EventID   uint64           `gorm:"not null;uniqueIndex:idx_attendances_event_user,priority:1" json:"event_id"`
	UserID    uint64           `gorm:"not null;uniqueIndex:idx_attendances_event_user,priority:2;index" json:"user_id"`
	Status    AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Method    string           `gorm:"type:varchar(50);not null;default:'manual'" json:"method"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
