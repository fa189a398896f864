package repository

import (
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormUserAchievementRepository is a GORM implementation of UserAchievementRepository
type GormUserAchievementRepository struct {
	db *gorm.DB
}

// NewUserAchievementRepository creates a new UserAchievementRepository
func NewUserAchievementRepository(db *gorm.DB) UserAchievementRepository {
	return &GormUserAchievementRepository{db: db}
}

func (r *GormUserAchievementRepository) filtered(filter AchievementLinkFilter) *gorm.DB {
	query := r.db.Model(&models.UserAchievement{})
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.AchievementID != nil {
		query = query.Where("achievement_id = ?", *filter.AchievementID)
	}
	return query
}

// Create links a user to an achievement
func (r *GormUserAchievementRepository) Create(link *models.UserAchievement) error {
	return r.db.Omit("User", "Achievement").Create(link).Error
}

// FindByID finds a link by ID with its achievement
func (r *GormUserAchievementRepository) FindByID(id uint64) (*models.UserAchievement, error) {
	var link models.UserAchievement
	if err := r.db.Preload("Achievement").First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByPair finds the link between a user and an achievement
func (r *GormUserAchievementRepository) FindByPair(userID, achievementID uint64) (*models.UserAchievement, error) {
	var link models.UserAchievement
	err := r.db.Preload("Achievement").
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// List retrieves links matching the filter, most recent first
func (r *GormUserAchievementRepository) List(filter AchievementLinkFilter) ([]models.UserAchievement, error) {
	var links []models.UserAchievement
	if err := r.filtered(filter).Preload("Achievement").Order("earned_at DESC").Order("id DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Count counts links matching the filter
func (r *GormUserAchievementRepository) Count(filter AchievementLinkFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// Delete removes a link
func (r *GormUserAchievementRepository) Delete(id uint64) error {
	return deleteByID(r.db, &models.UserAchievement{}, id)
}

// DeleteMatching removes every link matching the filter
func (r *GormUserAchievementRepository) DeleteMatching(filter AchievementLinkFilter) (int64, error) {
	var ids []uint64
	if err := r.filtered(filter).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.UserAchievement{}, ids)
	return result.RowsAffected, result.Error
}
