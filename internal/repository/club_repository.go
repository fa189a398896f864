package repository

import (
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormClubRepository is a GORM implementation of ClubRepository
type GormClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &GormClubRepository{db: db}
}

// Create creates a new club
func (r *GormClubRepository) Create(club *models.Club) error {
	return r.db.Create(club).Error
}

// FindByID finds a club by ID
func (r *GormClubRepository) FindByID(id uint64) (*models.Club, error) {
	var club models.Club
	if err := r.db.First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// FindByEmail finds a club by email
func (r *GormClubRepository) FindByEmail(email string) (*models.Club, error) {
	var club models.Club
	if err := r.db.Where("email = ?", email).First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// FindByName finds a club by name
func (r *GormClubRepository) FindByName(name string) (*models.Club, error) {
	var club models.Club
	if err := r.db.Where("name = ?", name).First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// List retrieves clubs matching the filter
func (r *GormClubRepository) List(filter AccountFilter) ([]models.Club, int64, error) {
	query := r.db.Model(&models.Club{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clubs []models.Club
	if err := query.Order("id ASC").Scopes(database.Paginate(filter.Pagination)).Find(&clubs).Error; err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

// ListIDs returns the id of every club
func (r *GormClubRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.Club{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Count counts all clubs
func (r *GormClubRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Club{}).Count(&count).Error
	return count, err
}

// Update saves a club
func (r *GormClubRepository) Update(club *models.Club) error {
	return r.db.Save(club).Error
}

// AddPoints applies delta to a club's points, never going below zero
func (r *GormClubRepository) AddPoints(id uint64, delta int64) error {
	return addPoints(r.db, &models.Club{}, id, delta)
}

// Delete removes a club, its events with their RSVPs, attendances and awards,
// its achievements and its notifications
func (r *GormClubRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		events := tx.Model(&models.Event{}).Select("id").Where("club_id = ?", id)

		if err := tx.Where("event_id IN (?)", events).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?)", events).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id IN (?)", events).Delete(&models.PointsAward{}).Error; err != nil {
			return err
		}
		if err := tx.Where("club_id = ?", id).Delete(&models.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("club_id = ?", id).Delete(&models.ClubAchievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetClub, id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_kind = ? AND recipient_id = ?", models.TargetClub, id).Delete(&models.PointsAward{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Club{}, id)
	})
}

// Top returns the clubs with the most points, ties broken by id
func (r *GormClubRepository) Top(limit int) ([]models.Club, error) {
	var clubs []models.Club
	if err := r.db.Order("points DESC").Order("id ASC").Limit(limit).Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// Rank returns the leaderboard position of a club
func (r *GormClubRepository) Rank(id uint64) (int64, error) {
	club, err := r.FindByID(id)
	if err != nil {
		return 0, err
	}
	return rankOf(r.db, &models.Club{}, club.Points)
}

// ExistsByName reports whether the name is taken
func (r *GormClubRepository) ExistsByName(name string) (bool, error) {
	return exists(r.db.Model(&models.Club{}).Where("name = ?", name))
}

// ExistsByEmail reports whether the email is taken
func (r *GormClubRepository) ExistsByEmail(email string) (bool, error) {
	return exists(r.db.Model(&models.Club{}).Where("email = ?", email))
}
