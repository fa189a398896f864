package repository

import (
	"fmt"

	"github.com/vibevent/vibevent-api/internal/models"
	"gorm.io/gorm"
)

// GormAwardRepository is a GORM implementation of AwardRepository
type GormAwardRepository struct {
	db *gorm.DB
}

// NewAwardRepository creates a new AwardRepository
func NewAwardRepository(db *gorm.DB) AwardRepository {
	return &GormAwardRepository{db: db}
}

// Find returns the ledger row for a recipient of an event
func (r *GormAwardRepository) Find(eventID uint64, kind models.TargetKind, recipientID uint64) (*models.PointsAward, error) {
	var award models.PointsAward
	err := r.db.
		Where("event_id = ? AND recipient_kind = ? AND recipient_id = ?", eventID, kind, recipientID).
		First(&award).Error
	if err != nil {
		return nil, err
	}
	return &award, nil
}

// ListByEvent returns every ledger row of an event
func (r *GormAwardRepository) ListByEvent(eventID uint64) ([]models.PointsAward, error) {
	var awards []models.PointsAward
	if err := r.db.Where("event_id = ?", eventID).Order("id ASC").Find(&awards).Error; err != nil {
		return nil, err
	}
	return awards, nil
}

// Award records the ledger row and credits the recipient atomically
func (r *GormAwardRepository) Award(award *models.PointsAward) error {
	var recipient interface{}
	switch award.RecipientKind {
	case models.TargetUser:
		recipient = &models.User{}
	case models.TargetClub:
		recipient = &models.Club{}
	default:
		return fmt.Errorf("unknown recipient kind %q", award.RecipientKind)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(award).Error; err != nil {
			return err
		}
		return addPoints(tx, recipient, award.RecipientID, award.Points)
	})
}
