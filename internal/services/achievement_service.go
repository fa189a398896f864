package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

var (
	ErrAchievementNotFound      = errors.New("achievement not found")
	ErrAchievementExists        = errors.New("an achievement with this title already exists")
	ErrAchievementTitleRequired = errors.New("title is required")
	ErrNegativePointsRequired   = errors.New("points required cannot be negative")
)

// AchievementService manages the achievement catalogue. Every change is
// announced to all users and all clubs.
type AchievementService struct {
	achievementRepo repository.AchievementRepository
	userRepo        repository.UserRepository
	clubRepo        repository.ClubRepository
	notifier        *Notifier
	logger          *slog.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo repository.AchievementRepository,
	userRepo repository.UserRepository,
	clubRepo repository.ClubRepository,
	notifier *Notifier,
	logger *slog.Logger,
) *AchievementService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementService{
		achievementRepo: achievementRepo,
		userRepo:        userRepo,
		clubRepo:        clubRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// CreateAchievementInput represents input for creating an achievement
type CreateAchievementInput struct {
	Title          string
	Description    string
	Badge          string
	PointsRequired int64
}

// UpdateAchievementInput represents input for updating an achievement
type UpdateAchievementInput struct {
	Title          *string
	Description    *string
	Badge          *string
	PointsRequired *int64
}

// Create stores an achievement and announces it
func (s *AchievementService) Create(input CreateAchievementInput) (*models.Achievement, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrAchievementTitleRequired
	}
	if input.PointsRequired < 0 {
		return nil, ErrNegativePointsRequired
	}

	achievement := &models.Achievement{
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		Badge:          strings.TrimSpace(input.Badge),
		PointsRequired: input.PointsRequired,
	}
	if err := s.achievementRepo.Create(achievement); err != nil {
		if isDuplicate(err) {
			return nil, ErrAchievementExists
		}
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}

	s.announce(notify.TypeAchievementCreated, notify.AchievementCreatedContent(*achievement))

	return achievement, nil
}

// Get returns an achievement by id
func (s *AchievementService) Get(id uint64) (*models.Achievement, error) {
	achievement, err := s.achievementRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find achievement: %w", err)
	}
	return achievement, nil
}

// GetByTitle returns an achievement by title
func (s *AchievementService) GetByTitle(title string) (*models.Achievement, error) {
	achievement, err := s.achievementRepo.FindByTitle(strings.TrimSpace(title))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAchievementNotFound
		}
		return nil, fmt.Errorf("failed to find achievement: %w", err)
	}
	return achievement, nil
}

// List returns achievements matching the filter
func (s *AchievementService) List(filter repository.AchievementFilter) ([]models.Achievement, error) {
	achievements, err := s.achievementRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

// Count counts achievements matching the filter
func (s *AchievementService) Count(filter repository.AchievementFilter) (int64, error) {
	count, err := s.achievementRepo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count achievements: %w", err)
	}
	return count, nil
}

// ExistsByTitle reports whether the title is taken
func (s *AchievementService) ExistsByTitle(title string) (bool, error) {
	found, err := s.achievementRepo.ExistsByTitle(strings.TrimSpace(title))
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return found, nil
}

// Update merges the provided fields and announces the change
func (s *AchievementService) Update(id uint64, input UpdateAchievementInput) (*models.Achievement, error) {
	if input.PointsRequired != nil && *input.PointsRequired < 0 {
		return nil, ErrNegativePointsRequired
	}

	achievement, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mergeString(&achievement.Title, input.Title)
	mergeString(&achievement.Badge, input.Badge)
	if input.Description != nil {
		achievement.Description = strings.TrimSpace(*input.Description)
	}
	if input.PointsRequired != nil {
		achievement.PointsRequired = *input.PointsRequired
	}

	if err := s.achievementRepo.Update(achievement); err != nil {
		if isDuplicate(err) {
			return nil, ErrAchievementExists
		}
		return nil, fmt.Errorf("failed to update achievement: %w", err)
	}

	s.announce(notify.TypeAchievementUpdated, notify.AchievementUpdatedContent(*achievement))

	return achievement, nil
}

// UpdatePointsRequired changes only the threshold
func (s *AchievementService) UpdatePointsRequired(id uint64, points int64) (*models.Achievement, error) {
	return s.Update(id, UpdateAchievementInput{PointsRequired: &points})
}

// Delete removes an achievement with its links and announces it
func (s *AchievementService) Delete(id uint64) error {
	achievement, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.achievementRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrAchievementNotFound
		}
		return fmt.Errorf("failed to delete achievement: %w", err)
	}

	s.announce(notify.TypeAchievementDeleted, notify.AchievementDeletedContent(*achievement))

	return nil
}

// announce notifies every user and every club known right now.
func (s *AchievementService) announce(notifType, content string) {
	var targets []notify.Target

	userIDs, err := s.userRepo.ListIDs()
	if err != nil {
		s.logger.Error("notification_recipients_failed", "type", notifType, "kind", models.TargetUser, "error", err)
	} else {
		targets = append(targets, notify.Users(userIDs)...)
	}

	clubIDs, err := s.clubRepo.ListIDs()
	if err != nil {
		s.logger.Error("notification_recipients_failed", "type", notifType, "kind", models.TargetClub, "error", err)
	} else {
		targets = append(targets, notify.Clubs(clubIDs)...)
	}

	s.notifier.Deliver(notify.ForEach(targets, notifType, content))
}
