package models

import "time"

type RSVPStatus string

const (
	RSVPStatusYes   RSVPStatus = "yes"
	RSVPStatusMaybe RSVPStatus = "maybe"
	RSVPStatusNo    RSVPStatus = "no"
)

// Valid reports whether s is one of the accepted RSVP answers.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusYes, RSVPStatusMaybe, RSVPStatusNo:
		return true
	}
	return false
}

type RSVP struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	EventID   uint64     `gorm:"not null;uniqueIndex:idx_rsvps_event_user,priority:1" json:"event_id"`
	UserID    uint64     `gorm:"not null;uniqueIndex:idx_rsvps_event_user,priority:2;index" json:"user_id"`
	Status    RSVPStatus `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"-"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (RSVP) TableName() string {
	return "rsvps"
}
