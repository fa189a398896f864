package models

import "time"

type Event struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_events_title_date,priority:1" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index;uniqueIndex:idx_events_title_date,priority:2" json:"date"`
	Location    string    `gorm:"type:varchar(255);not null;index" json:"location"`
	Picture     string    `gorm:"type:varchar(512)" json:"picture"`
	ClubID      uint64    `gorm:"not null;index" json:"club_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Club Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

// HasStarted reports whether the event date is before now.
func (e Event) HasStarted(now time.Time) bool {
	return e.Date.Before(now)
}
