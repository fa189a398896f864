package repository

import (
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormRSVPRepository is a GORM implementation of RSVPRepository
type GormRSVPRepository struct {
	db *gorm.DB
}

// NewRSVPRepository creates a new RSVPRepository
func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &GormRSVPRepository{db: db}
}

// participationQuery applies a ParticipationFilter to the rsvps or attendances table.
func participationQuery(db *gorm.DB, model interface{}, filter ParticipationFilter) *gorm.DB {
	query := db.Model(model)
	if filter.EventID != nil {
		query = query.Where("event_id = ?", *filter.EventID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

// Create creates an RSVP
func (r *GormRSVPRepository) Create(rsvp *models.RSVP) error {
	return r.db.Omit("Event", "User").Create(rsvp).Error
}

// FindByID finds an RSVP by ID
func (r *GormRSVPRepository) FindByID(id uint64) (*models.RSVP, error) {
	var rsvp models.RSVP
	if err := r.db.First(&rsvp, id).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// FindByEventAndUser finds the RSVP of a user for an event
func (r *GormRSVPRepository) FindByEventAndUser(eventID, userID uint64) (*models.RSVP, error) {
	var rsvp models.RSVP
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// List retrieves RSVPs matching the filter
func (r *GormRSVPRepository) List(filter ParticipationFilter) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	if err := participationQuery(r.db, &models.RSVP{}, filter).Order("id ASC").Find(&rsvps).Error; err != nil {
		return nil, err
	}
	return rsvps, nil
}

// Count counts RSVPs matching the filter
func (r *GormRSVPRepository) Count(filter ParticipationFilter) (int64, error) {
	var count int64
	err := participationQuery(r.db, &models.RSVP{}, filter).Count(&count).Error
	return count, err
}

// UserIDsByStatus returns the users that answered status for an event
func (r *GormRSVPRepository) UserIDsByStatus(eventID uint64, status models.RSVPStatus) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.RSVP{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus changes the status of an RSVP
func (r *GormRSVPRepository) UpdateStatus(id uint64, status models.RSVPStatus) error {
	result := r.db.Model(&models.RSVP{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an RSVP
func (r *GormRSVPRepository) Delete(id uint64) error {
	return deleteByID(r.db, &models.RSVP{}, id)
}

// DeleteByEvent removes every RSVP of an event
func (r *GormRSVPRepository) DeleteByEvent(eventID uint64) (int64, error) {
	result := r.db.Where("event_id = ?", eventID).Delete(&models.RSVP{})
	return result.RowsAffected, result.Error
}

// DeleteByUser removes every RSVP of a user
func (r *GormRSVPRepository) DeleteByUser(userID uint64) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.RSVP{})
	return result.RowsAffected, result.Error
}
