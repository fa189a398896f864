package services

import (
	"errors"
	"fmt"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

var (
	ErrUserAchievementNotFound = errors.New("user achievement not found")
	ErrUserAchievementExists   = errors.New("user already earned this achievement")
)

// UserAchievementService links users to the achievements they earned
type UserAchievementService struct {
	linkRepo        repository.UserAchievementRepository
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
	notifier        *Notifier
}

// NewUserAchievementService creates a new UserAchievementService
func NewUserAchievementService(
	linkRepo repository.UserAchievementRepository,
	userRepo repository.UserRepository,
	achievementRepo repository.AchievementRepository,
	notifier *Notifier,
) *UserAchievementService {
	return &UserAchievementService{
		linkRepo:        linkRepo,
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		notifier:        notifier,
	}
}

// Create records that a user earned an achievement and tells the user
func (s *UserAchievementService) Create(userID, achievementID uint64) (*models.UserAchievement, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	achievement, err := findAchievement(s.achievementRepo, achievementID)
	if err != nil {
		return nil, err
	}

	link := &models.UserAchievement{UserID: userID, AchievementID: achievement.ID}
	if err := s.linkRepo.Create(link); err != nil {
		if isDuplicate(err) {
			return nil, ErrUserAchievementExists
		}
		return nil, fmt.Errorf("failed to create user achievement: %w", err)
	}
	link.Achievement = *achievement

	s.notifier.Deliver([]models.Notification{notify.UserAchievementEarned(userID, *achievement)})

	return link, nil
}

// Get returns a link by id
func (s *UserAchievementService) Get(id uint64) (*models.UserAchievement, error) {
	link, err := s.linkRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find user achievement: %w", err)
	}
	return link, nil
}

// GetByPair returns the link between a user and an achievement
func (s *UserAchievementService) GetByPair(userID, achievementID uint64) (*models.UserAchievement, error) {
	link, err := s.linkRepo.FindByPair(userID, achievementID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find user achievement: %w", err)
	}
	return link, nil
}

// List returns links matching the filter
func (s *UserAchievementService) List(filter repository.AchievementLinkFilter) ([]models.UserAchievement, error) {
	links, err := s.linkRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}
	return links, nil
}

// Count counts links matching the filter
func (s *UserAchievementService) Count(filter repository.AchievementLinkFilter) (int64, error) {
	count, err := s.linkRepo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count user achievements: %w", err)
	}
	return count, nil
}

// Exists reports whether the user earned the achievement
func (s *UserAchievementService) Exists(userID, achievementID uint64) (bool, error) {
	count, err := s.Count(repository.AchievementLinkFilter{OwnerID: &userID, AchievementID: &achievementID})
	return count > 0, err
}

// Delete removes a link
func (s *UserAchievementService) Delete(id uint64) error {
	if err := s.linkRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrUserAchievementNotFound
		}
		return fmt.Errorf("failed to delete user achievement: %w", err)
	}
	return nil
}

// DeleteByUser removes every achievement of a user
func (s *UserAchievementService) DeleteByUser(userID uint64) (int64, error) {
	return s.deleteMatching(repository.AchievementLinkFilter{OwnerID: &userID})
}

// DeleteByAchievement removes an achievement from every user
func (s *UserAchievementService) DeleteByAchievement(achievementID uint64) (int64, error) {
	return s.deleteMatching(repository.AchievementLinkFilter{AchievementID: &achievementID})
}

func (s *UserAchievementService) deleteMatching(filter repository.AchievementLinkFilter) (int64, error) {
	deleted, err := s.linkRepo.DeleteMatching(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user achievements: %w", err)
	}
	return deleted, nil
}
