package repository

import (
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormClubAchievementRepository is a GORM implementation of ClubAchievementRepository
type GormClubAchievementRepository struct {
	db *gorm.DB
}

// NewClubAchievementRepository creates a new ClubAchievementRepository
func NewClubAchievementRepository(db *gorm.DB) ClubAchievementRepository {
	return &GormClubAchievementRepository{db: db}
}

func (r *GormClubAchievementRepository) filtered(filter AchievementLinkFilter) *gorm.DB {
	query := r.db.Model(&models.ClubAchievement{})
	if filter.OwnerID != nil {
		query = query.Where("club_id = ?", *filter.OwnerID)
	}
	if filter.AchievementID != nil {
		query = query.Where("achievement_id = ?", *filter.AchievementID)
	}
	return query
}

// Create links a club to an achievement
func (r *GormClubAchievementRepository) Create(link *models.ClubAchievement) error {
	return r.db.Omit("Club", "Achievement").Create(link).Error
}

// FindByID finds a link by ID with its achievement
func (r *GormClubAchievementRepository) FindByID(id uint64) (*models.ClubAchievement, error) {
	var link models.ClubAchievement
	if err := r.db.Preload("Achievement").First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByPair finds the link between a club and an achievement
func (r *GormClubAchievementRepository) FindByPair(clubID, achievementID uint64) (*models.ClubAchievement, error) {
	var link models.ClubAchievement
	err := r.db.Preload("Achievement").
		Where("club_id = ? AND achievement_id = ?", clubID, achievementID).
		First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// List retrieves links matching the filter, most recent first
func (r *GormClubAchievementRepository) List(filter AchievementLinkFilter) ([]models.ClubAchievement, error) {
	var links []models.ClubAchievement
	if err := r.filtered(filter).Preload("Achievement").Order("earned_at DESC").Order("id DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Count counts links matching the filter
func (r *GormClubAchievementRepository) Count(filter AchievementLinkFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// Delete removes a link
func (r *GormClubAchievementRepository) Delete(id uint64) error {
	return deleteByID(r.db, &models.ClubAchievement{}, id)
}

// DeleteMatching removes every link matching the filter
func (r *GormClubAchievementRepository) DeleteMatching(filter AchievementLinkFilter) (int64, error) {
	var ids []uint64
	if err := r.filtered(filter).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Delete(&models.ClubAchievement{}, ids)
	return result.RowsAffected, result.Error
}
