package repository

import (
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormAchievementRepository is a GORM implementation of AchievementRepository
type GormAchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &GormAchievementRepository{db: db}
}

func (r *GormAchievementRepository) filtered(filter AchievementFilter) *gorm.DB {
	query := r.db.Model(&models.Achievement{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.PointsRequired != nil {
		query = query.Where("points_required = ?", *filter.PointsRequired)
	}
	return query
}

// Create creates an achievement
func (r *GormAchievementRepository) Create(achievement *models.Achievement) error {
	return r.db.Create(achievement).Error
}

// FindByID finds an achievement by ID
func (r *GormAchievementRepository) FindByID(id uint64) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.db.First(&achievement, id).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// FindByTitle finds an achievement by title
func (r *GormAchievementRepository) FindByTitle(title string) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.db.Where("title = ?", title).First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

// List retrieves achievements ordered by the points they require
func (r *GormAchievementRepository) List(filter AchievementFilter) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := r.filtered(filter).Order("points_required ASC").Order("id ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

// Count counts achievements matching the filter
func (r *GormAchievementRepository) Count(filter AchievementFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// ExistsByTitle reports whether the title is taken
func (r *GormAchievementRepository) ExistsByTitle(title string) (bool, error) {
	return exists(r.db.Model(&models.Achievement{}).Where("title = ?", title))
}

// Update saves an achievement
func (r *GormAchievementRepository) Update(achievement *models.Achievement) error {
	return r.db.Save(achievement).Error
}

// Delete removes an achievement and every club and user link to it
func (r *GormAchievementRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("achievement_id = ?", id).Delete(&models.ClubAchievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("achievement_id = ?", id).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Achievement{}, id)
	})
}
