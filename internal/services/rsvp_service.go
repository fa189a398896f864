package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

var (
	ErrRSVPNotFound = errors.New("rsvp not found")
	ErrRSVPExists   = errors.New("user has already responded to this event")
)

// RSVPService handles event responses. Every create or status change notifies
// the club that owns the event.
type RSVPService struct {
	clock
	rsvpRepo  repository.RSVPRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  *Notifier
}

// NewRSVPService creates a new RSVPService
func NewRSVPService(
	rsvpRepo repository.RSVPRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) *RSVPService {
	return &RSVPService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// CreateRSVPInput represents input for responding to an event
type CreateRSVPInput struct {
	EventID uint64
	UserID  uint64
	Status  models.RSVPStatus
}

// RSVPFilter selects RSVPs
type RSVPFilter struct {
	EventID *uint64
	UserID  *uint64
	Status  models.RSVPStatus
}

func (f RSVPFilter) toRepo() (repository.ParticipationFilter, error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.ParticipationFilter{}, ErrInvalidStatus
	}
	return repository.ParticipationFilter{EventID: f.EventID, UserID: f.UserID, Status: string(f.Status)}, nil
}

// openEvent loads an event that has not started yet.
func openEvent(repo repository.EventRepository, eventID uint64, now func() time.Time) (*models.Event, error) {
	event, err := repo.FindByID(eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	if event.HasStarted(now()) {
		return nil, ErrEventInPast
	}
	return event, nil
}

func findUser(repo repository.UserRepository, userID uint64) (*models.User, error) {
	user, err := repo.FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// Create stores a response; a second response from the same user is a conflict
func (s *RSVPService) Create(input CreateRSVPInput) (*models.RSVP, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	event, err := openEvent(s.eventRepo, input.EventID, s.Now)
	if err != nil {
		return nil, err
	}
	user, err := findUser(s.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	rsvp := &models.RSVP{
		EventID: event.ID,
		UserID:  user.ID,
		Status:  input.Status,
	}
	if err := s.rsvpRepo.Create(rsvp); err != nil {
		if isDuplicate(err) {
			return nil, ErrRSVPExists
		}
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}

	s.notifier.Deliver([]models.Notification{notify.RSVPChanged(*user, *event, rsvp.Status)})

	return rsvp, nil
}

// Get returns an RSVP by id
func (s *RSVPService) Get(id uint64) (*models.RSVP, error) {
	rsvp, err := s.rsvpRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRSVPNotFound
		}
		return nil, fmt.Errorf("failed to find rsvp: %w", err)
	}
	return rsvp, nil
}

// List returns RSVPs matching the filter
func (s *RSVPService) List(filter RSVPFilter) ([]models.RSVP, error) {
	f, err := filter.toRepo()
	if err != nil {
		return nil, err
	}
	rsvps, err := s.rsvpRepo.List(f)
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	return rsvps, nil
}

// Count counts RSVPs matching the filter
func (s *RSVPService) Count(filter RSVPFilter) (int64, error) {
	f, err := filter.toRepo()
	if err != nil {
		return 0, err
	}
	count, err := s.rsvpRepo.Count(f)
	if err != nil {
		return 0, fmt.Errorf("failed to count rsvps: %w", err)
	}
	return count, nil
}

// Exists reports whether the user responded to the event
func (s *RSVPService) Exists(eventID, userID uint64) (bool, error) {
	count, err := s.Count(RSVPFilter{EventID: &eventID, UserID: &userID})
	return count > 0, err
}

// UsersByStatus returns the users that gave status for the event
func (s *RSVPService) UsersByStatus(eventID uint64, status models.RSVPStatus) ([]models.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	ids, err := s.rsvpRepo.UserIDsByStatus(eventID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvp users: %w", err)
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load rsvp users: %w", err)
	}
	return users, nil
}

// UpdateStatus changes a response while the event is still ahead
func (s *RSVPService) UpdateStatus(id uint64, status models.RSVPStatus) (*models.RSVP, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	rsvp, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	event, err := openEvent(s.eventRepo, rsvp.EventID, s.Now)
	if err != nil {
		return nil, err
	}

	if err := s.rsvpRepo.UpdateStatus(id, status); err != nil {
		if isNotFound(err) {
			return nil, ErrRSVPNotFound
		}
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	rsvp.Status = status

	user, err := s.userRepo.FindByID(rsvp.UserID)
	if err != nil {
		user = &models.User{ID: rsvp.UserID}
	}
	s.notifier.Deliver([]models.Notification{notify.RSVPChanged(*user, *event, status)})

	return rsvp, nil
}

// Delete removes an RSVP
func (s *RSVPService) Delete(id uint64) error {
	if err := s.rsvpRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrRSVPNotFound
		}
		return fmt.Errorf("failed to delete rsvp: %w", err)
	}
	return nil
}

// DeleteByEvent removes every RSVP of an event
func (s *RSVPService) DeleteByEvent(eventID uint64) (int64, error) {
	deleted, err := s.rsvpRepo.DeleteByEvent(eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rsvps: %w", err)
	}
	return deleted, nil
}

// DeleteByUser removes every RSVP of a user
func (s *RSVPService) DeleteByUser(userID uint64) (int64, error) {
	deleted, err := s.rsvpRepo.DeleteByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rsvps: %w", err)
	}
	return deleted, nil
}
