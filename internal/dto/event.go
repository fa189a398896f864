package dto

import (
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
)

// EventDTO represents an event in API responses
type EventDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Picture     string    `json:"picture"`
	ClubID      uint64    `json:"club_id"`
	Club        *ClubDTO  `json:"club,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Picture:     event.Picture,
		ClubID:      event.ClubID,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}

	// Include club if preloaded
	if event.Club.ID != 0 {
		club := ToClubDTO(event.Club)
		dto.Club = &club
	}

	return dto
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	items := make([]EventDTO, len(events))
	for i, event := range events {
		items[i] = ToEventDTO(event)
	}
	return items
}
