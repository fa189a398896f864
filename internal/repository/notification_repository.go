package repository

import (
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// filtered always scopes to a single recipient
func (r *GormNotificationRepository) filtered(filter NotificationFilter) *gorm.DB {
	query := r.db.Model(&models.Notification{}).
		Where("target_kind = ? AND target_id = ?", filter.TargetKind, filter.TargetID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(content) LIKE ?", likePattern(filter.Search))
	}
	if filter.Before != nil {
		query = query.Where("created_at < ?", *filter.Before)
	}
	if filter.After != nil {
		query = query.Where("created_at > ?", *filter.After)
	}
	return query
}

// Create stores a notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// List retrieves notifications newest first
func (r *GormNotificationRepository) List(filter NotificationFilter) ([]models.Notification, int64, error) {
	query := r.filtered(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	listQuery := query.Order("created_at DESC").Order("id DESC").Scopes(database.Paginate(filter.Pagination))
	if err := listQuery.Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// Count counts notifications matching the filter
func (r *GormNotificationRepository) Count(filter NotificationFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// UpdateStatus marks a notification read or unread
func (r *GormNotificationRepository) UpdateStatus(id uint64, status models.NotificationStatus) error {
	result := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of a recipient read
func (r *GormNotificationRepository) MarkAllRead(kind models.TargetKind, targetID uint64) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("target_kind = ? AND target_id = ? AND status = ?", kind, targetID, models.NotificationUnread).
		Update("status", models.NotificationRead)
	return result.RowsAffected, result.Error
}

// Delete removes a notification
func (r *GormNotificationRepository) Delete(id uint64) error {
	return deleteByID(r.db, &models.Notification{}, id)
}

// DeleteMatching removes every notification matching the filter
func (r *GormNotificationRepository) DeleteMatching(filter NotificationFilter) (int64, error) {
	result := r.filtered(filter).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
