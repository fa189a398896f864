package repository

import (
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs finds every user whose id is listed
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users matching the filter
func (r *GormUserRepository) List(filter AccountFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Order("id ASC").Scopes(database.Paginate(filter.Pagination)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListIDs returns the id of every user
func (r *GormUserRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.User{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Count counts all users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Update saves a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// AddPoints applies delta to a user's points, never going below zero
func (r *GormUserRepository) AddPoints(id uint64, delta int64) error {
	return addPoints(r.db, &models.User{}, id, delta)
}

// Delete removes a user together with everything that references them
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id = ?", models.TargetUser, id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_kind = ? AND recipient_id = ?", models.TargetUser, id).Delete(&models.PointsAward{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.User{}, id)
	})
}

// Top returns the users with the most points, ties broken by id
func (r *GormUserRepository) Top(limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("points DESC").Order("id ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Rank returns the leaderboard position of a user
func (r *GormUserRepository) Rank(id uint64) (int64, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return 0, err
	}
	return rankOf(r.db, &models.User{}, user.Points)
}

// ExistsByUsername reports whether the username is taken
func (r *GormUserRepository) ExistsByUsername(username string) (bool, error) {
	return exists(r.db.Model(&models.User{}).Where("username = ?", username))
}

// ExistsByEmail reports whether the email is taken
func (r *GormUserRepository) ExistsByEmail(email string) (bool, error) {
	return exists(r.db.Model(&models.User{}).Where("email = ?", email))
}
