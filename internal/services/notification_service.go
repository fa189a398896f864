package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/utils"
)

var (
	ErrNotificationNotFound        = errors.New("notification not found")
	ErrNotificationTypeRequired    = errors.New("type is required")
	ErrNotificationContentRequired = errors.New("content is required")
	ErrInvalidTimeRange            = errors.New("after must be earlier than before")
)

// NotificationService reads and maintains a recipient's notifications.
// Every lookup is scoped to the principal so nobody reads another inbox.
type NotificationService struct {
	repo     repository.NotificationRepository
	notifier *Notifier
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, notifier *Notifier) *NotificationService {
	return &NotificationService{
		repo:     repo,
		notifier: notifier,
	}
}

// CreateNotificationInput represents a manually created notification
type CreateNotificationInput struct {
	TargetKind models.TargetKind
	TargetID   uint64
	Type       string
	Content    string
}

// NotificationQuery filters a principal's notifications
type NotificationQuery struct {
	Status     models.NotificationStatus
	Type       string
	Search     string
	Before     *time.Time
	After      *time.Time
	Pagination utils.PaginationParams
}

func (q NotificationQuery) filter(p Principal) (repository.NotificationFilter, error) {
	if q.Status != "" && !q.Status.Valid() {
		return repository.NotificationFilter{}, ErrInvalidStatus
	}
	if q.Before != nil && q.After != nil && !q.After.Before(*q.Before) {
		return repository.NotificationFilter{}, ErrInvalidTimeRange
	}
	return repository.NotificationFilter{
		TargetKind: p.Kind,
		TargetID:   p.ID,
		Status:     q.Status,
		Type:       strings.TrimSpace(q.Type),
		Search:     strings.TrimSpace(q.Search),
		Before:     q.Before,
		After:      q.After,
		Pagination: q.Pagination,
	}, nil
}

// Create stores a notification and pushes it to the recipient
func (s *NotificationService) Create(input CreateNotificationInput) (*models.Notification, error) {
	if !input.TargetKind.Valid() || input.TargetID == 0 {
		return nil, ErrInvalidTargetKind
	}
	notifType := strings.TrimSpace(input.Type)
	if notifType == "" {
		return nil, ErrNotificationTypeRequired
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrNotificationContentRequired
	}

	notification, err := s.notifier.DeliverOne(models.Notification{
		TargetKind: input.TargetKind,
		TargetID:   input.TargetID,
		Type:       notifType,
		Content:    content,
		Status:     models.NotificationUnread,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// Get returns one of the principal's notifications
func (s *NotificationService) Get(p Principal, id uint64) (*models.Notification, error) {
	notification, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if notification.TargetKind != p.Kind || notification.TargetID != p.ID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// List returns the principal's notifications, newest first
func (s *NotificationService) List(p Principal, query NotificationQuery) ([]models.Notification, int64, error) {
	filter, err := query.filter(p)
	if err != nil {
		return nil, 0, err
	}
	notifications, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// Count counts the principal's notifications matching the query
func (s *NotificationService) Count(p Principal, query NotificationQuery) (int64, error) {
	filter, err := query.filter(p)
	if err != nil {
		return 0, err
	}
	count, err := s.repo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// Exists reports whether any notification matches the query
func (s *NotificationService) Exists(p Principal, query NotificationQuery) (bool, error) {
	count, err := s.Count(p, query)
	return count > 0, err
}

// UpdateStatus marks one notification read or unread
func (s *NotificationService) UpdateStatus(p Principal, id uint64, status models.NotificationStatus) (*models.Notification, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	notification, err := s.Get(p, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(id, status); err != nil {
		if isNotFound(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	notification.Status = status
	return notification, nil
}

// MarkAllRead marks every unread notification of the principal read
func (s *NotificationService) MarkAllRead(p Principal) (int64, error) {
	updated, err := s.repo.MarkAllRead(p.Kind, p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return updated, nil
}

// Delete removes one of the principal's notifications
func (s *NotificationService) Delete(p Principal, id uint64) error {
	if _, err := s.Get(p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteMatching removes the principal's notifications matching the query
func (s *NotificationService) DeleteMatching(p Principal, query NotificationQuery) (int64, error) {
	filter, err := query.filter(p)
	if err != nil {
		return 0, err
	}
	deleted, err := s.repo.DeleteMatching(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return deleted, nil
}

// DeleteAllForTarget clears the principal's inbox
func (s *NotificationService) DeleteAllForTarget(p Principal) (int64, error) {
	return s.DeleteMatching(p, NotificationQuery{})
}
