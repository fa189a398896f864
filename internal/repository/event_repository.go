package repository

import (
	"time"

	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates a new event
func (r *GormEventRepository) Create(event *models.Event) error {
	return r.db.Omit("Club").Create(event).Error
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uint64, preload ...string) (*models.Event, error) {
	var event models.Event
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&event, id).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *GormEventRepository) filtered(filter EventFilter) *gorm.DB {
	query := r.db.Model(&models.Event{})

	if filter.ClubID != nil {
		query = query.Where("events.club_id = ?", *filter.ClubID)
	}
	if filter.Location != "" {
		query = query.Where("events.location = ?", filter.Location)
	}
	if filter.LocationSearch != "" {
		query = query.Where("LOWER(events.location) LIKE ?", likePattern(filter.LocationSearch))
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(events.title) LIKE ? OR LOWER(events.description) LIKE ?", pattern, pattern)
	}

	switch filter.When {
	case EventsUpcoming:
		query = query.Where("events.date >= ?", filter.Now)
	case EventsPast:
		query = query.Where("events.date < ?", filter.Now)
	}

	return query
}

// List retrieves events with filtering and pagination, soonest first
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, int64, error) {
	query := r.filtered(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	listQuery := query.Order("events.date ASC").Order("events.id ASC").Scopes(database.Paginate(filter.Pagination))
	if err := listQuery.Preload("Club").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(filter EventFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// ExistsByTitleAndDate reports whether an event with this title is on this date
func (r *GormEventRepository) ExistsByTitleAndDate(title string, date time.Time) (bool, error) {
	return exists(r.db.Model(&models.Event{}).Where("title = ? AND date = ?", title, date.UTC()))
}

// Update saves an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Omit("Club").Save(event).Error
}

// Delete removes an event with its RSVPs, attendances and award ledger rows
func (r *GormEventRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.RSVP{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.PointsAward{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Event{}, id)
	})
}
