package dto

import (
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Points    int64     `json:"points"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
}

// ClubDTO represents a club in API responses
type ClubDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	Points      int64     `json:"points"`
	Picture     string    `json:"picture"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserAuthResponse is returned by a successful user login
type UserAuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ClubAuthResponse is returned by a successful club login
type ClubAuthResponse struct {
	Token string  `json:"token"`
	Club  ClubDTO `json:"club"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Points:    user.Points,
		Picture:   user.Picture,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

// ToClubDTO converts a Club model to ClubDTO
func ToClubDTO(club models.Club) ClubDTO {
	return ClubDTO{
		ID:          club.ID,
		Name:        club.Name,
		Email:       club.Email,
		Description: club.Description,
		Points:      club.Points,
		Picture:     club.Picture,
		CreatedAt:   club.CreatedAt,
	}
}

// ToClubDTOs converts a slice of clubs
func ToClubDTOs(clubs []models.Club) []ClubDTO {
	items := make([]ClubDTO, len(clubs))
	for i, club := range clubs {
		items[i] = ToClubDTO(club)
	}
	return items
}
