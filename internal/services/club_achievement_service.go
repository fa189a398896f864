package services

import (
	"errors"
	"fmt"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

var (
	ErrClubAchievementNotFound = errors.New("club achievement not found")
	ErrClubAchievementExists   = errors.New("club already earned this achievement")
)

// ClubAchievementService links clubs to the achievements they earned
type ClubAchievementService struct {
	linkRepo        repository.ClubAchievementRepository
	clubRepo        repository.ClubRepository
	achievementRepo repository.AchievementRepository
	notifier        *Notifier
}

// NewClubAchievementService creates a new ClubAchievementService
func NewClubAchievementService(
	linkRepo repository.ClubAchievementRepository,
	clubRepo repository.ClubRepository,
	achievementRepo repository.AchievementRepository,
	notifier *Notifier,
) *ClubAchievementService {
	return &ClubAchievementService{
		linkRepo:        linkRepo,
		clubRepo:        clubRepo,
		achievementRepo: achievementRepo,
		notifier:        notifier,
	}
}

func findAchievement(repo repository.AchievementRepository, id uint64) (*models.Achievement, error) {
	achievement, err := repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find achievement: %w", err)
	}
	return achievement, nil
}

// Create records that a club earned an achievement and tells the club
func (s *ClubAchievementService) Create(clubID, achievementID uint64) (*models.ClubAchievement, error) {
	if _, err := s.clubRepo.FindByID(clubID); err != nil {
		if isNotFound(err) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}
	achievement, err := findAchievement(s.achievementRepo, achievementID)
	if err != nil {
		return nil, err
	}

	link := &models.ClubAchievement{ClubID: clubID, AchievementID: achievement.ID}
	if err := s.linkRepo.Create(link); err != nil {
		if isDuplicate(err) {
			return nil, ErrClubAchievementExists
		}
		return nil, fmt.Errorf("failed to create club achievement: %w", err)
	}
	link.Achievement = *achievement

	s.notifier.Deliver([]models.Notification{notify.ClubAchievementEarned(clubID, *achievement)})

	return link, nil
}

// Get returns a link by id
func (s *ClubAchievementService) Get(id uint64) (*models.ClubAchievement, error) {
	link, err := s.linkRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClubAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find club achievement: %w", err)
	}
	return link, nil
}

// GetByPair returns the link between a club and an achievement
func (s *ClubAchievementService) GetByPair(clubID, achievementID uint64) (*models.ClubAchievement, error) {
	link, err := s.linkRepo.FindByPair(clubID, achievementID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClubAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find club achievement: %w", err)
	}
	return link, nil
}

// List returns links matching the filter
func (s *ClubAchievementService) List(filter repository.AchievementLinkFilter) ([]models.ClubAchievement, error) {
	links, err := s.linkRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list club achievements: %w", err)
	}
	return links, nil
}

// Count counts links matching the filter
func (s *ClubAchievementService) Count(filter repository.AchievementLinkFilter) (int64, error) {
	count, err := s.linkRepo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count club achievements: %w", err)
	}
	return count, nil
}

// Exists reports whether the club earned the achievement
func (s *ClubAchievementService) Exists(clubID, achievementID uint64) (bool, error) {
	count, err := s.Count(repository.AchievementLinkFilter{OwnerID: &clubID, AchievementID: &achievementID})
	return count > 0, err
}

// Delete removes a link
func (s *ClubAchievementService) Delete(id uint64) error {
	if err := s.linkRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrClubAchievementNotFound
		}
		return fmt.Errorf("failed to delete club achievement: %w", err)
	}
	return nil
}

// DeleteByClub removes every achievement of a club
func (s *ClubAchievementService) DeleteByClub(clubID uint64) (int64, error) {
	return s.deleteMatching(repository.AchievementLinkFilter{OwnerID: &clubID})
}

// DeleteByAchievement removes an achievement from every club
func (s *ClubAchievementService) DeleteByAchievement(achievementID uint64) (int64, error) {
	return s.deleteMatching(repository.AchievementLinkFilter{AchievementID: &achievementID})
}

func (s *ClubAchievementService) deleteMatching(filter repository.AchievementLinkFilter) (int64, error) {
	deleted, err := s.linkRepo.DeleteMatching(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete club achievements: %w", err)
	}
	return deleted, nil
}
