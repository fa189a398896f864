package repository

import (
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormAttendanceRepository is a GORM implementation of AttendanceRepository
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// Create creates an attendance
func (r *GormAttendanceRepository) Create(attendance *models.Attendance) error {
	return r.db.Omit("Event", "User").Create(attendance).Error
}

// FindByID finds an attendance by ID
func (r *GormAttendanceRepository) FindByID(id uint64) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := r.db.First(&attendance, id).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// FindByEventAndUser finds the attendance of a user for an event
func (r *GormAttendanceRepository) FindByEventAndUser(eventID, userID uint64) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// List retrieves attendances matching the filter
func (r *GormAttendanceRepository) List(filter ParticipationFilter) ([]models.Attendance, error) {
	var attendances []models.Attendance
	if err := participationQuery(r.db, &models.Attendance{}, filter).Order("id ASC").Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

// Count counts attendances matching the filter
func (r *GormAttendanceRepository) Count(filter ParticipationFilter) (int64, error) {
	var count int64
	err := participationQuery(r.db, &models.Attendance{}, filter).Count(&count).Error
	return count, err
}

// UserIDsByStatus returns the users marked with status for an event
func (r *GormAttendanceRepository) UserIDsByStatus(eventID uint64, status models.AttendanceStatus) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Attendance{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus changes the status of an attendance
func (r *GormAttendanceRepository) UpdateStatus(id uint64, status models.AttendanceStatus) error {
	result := r.db.Model(&models.Attendance{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an attendance
func (r *GormAttendanceRepository) Delete(id uint64) error {
	return deleteByID(r.db, &models.Attendance{}, id)
}

// DeleteByEvent removes every attendance of an event
func (r *GormAttendanceRepository) DeleteByEvent(eventID uint64) (int64, error) {
	result := r.db.Where("event_id = ?", eventID).Delete(&models.Attendance{})
	return result.RowsAffected, result.Error
}

// DeleteByUser removes every attendance of a user
func (r *GormAttendanceRepository) DeleteByUser(userID uint64) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Attendance{})
	return result.RowsAffected, result.Error
}
