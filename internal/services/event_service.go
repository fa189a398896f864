package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/utils"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventExists           = errors.New("an event with this title already exists on this date")
	ErrEventTitleRequired    = errors.New("title is required")
	ErrEventLocationRequired = errors.New("location is required")
	ErrEventDateRequired     = errors.New("date is required")
	ErrEventClubRequired     = errors.New("club id is required")
	ErrInvalidEventWhen      = errors.New("when must be upcoming or past")
)

// EventService handles events and tells every student about changes to them
type EventService struct {
	clock
	eventRepo repository.EventRepository
	clubRepo  repository.ClubRepository
	userRepo  repository.UserRepository
	notifier  *Notifier
	logger    *slog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repository.EventRepository,
	clubRepo repository.ClubRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
	logger *slog.Logger,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateEventInput represents input for creating an event.
// Origin is the websocket connection id of the caller, skipped by the broadcast.
type CreateEventInput struct {
	ClubID      uint64
	Title       string
	Description string
	Date        time.Time
	Location    string
	Picture     string
	Origin      string
}

// UpdateEventInput represents input for updating an event
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Picture     *string
	Origin      string
}

// ListEventsInput represents filters for listing events
type ListEventsInput struct {
	ClubID         *uint64
	Location       string
	LocationSearch string
	Search         string
	When           string
	Pagination     utils.PaginationParams
}

// Create validates and stores an event, then notifies every user
func (s *EventService) Create(input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	location := strings.TrimSpace(input.Location)
	switch {
	case input.ClubID == 0:
		return nil, ErrEventClubRequired
	case title == "":
		return nil, ErrEventTitleRequired
	case location == "":
		return nil, ErrEventLocationRequired
	case input.Date.IsZero():
		return nil, ErrEventDateRequired
	}

	club, err := s.clubRepo.FindByID(input.ClubID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}

	event := &models.Event{
		ClubID:      club.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date.UTC(),
		Location:    location,
		Picture:     strings.TrimSpace(input.Picture),
	}

	if err := s.eventRepo.Create(event); err != nil {
		if isDuplicate(err) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	event.Club = *club

	s.fanOut(input.Origin, notify.TypeEventCreated, notify.EventCreatedContent(*event, *club))

	return event, nil
}

// Get returns an event with its club
func (s *EventService) Get(id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(id, "Club")
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

func (s *EventService) filter(input ListEventsInput) (repository.EventFilter, error) {
	when := repository.EventWhen(strings.ToLower(strings.TrimSpace(input.When)))
	switch when {
	case repository.EventsAll, repository.EventsUpcoming, repository.EventsPast:
	default:
		return repository.EventFilter{}, ErrInvalidEventWhen
	}

	return repository.EventFilter{
		ClubID:         input.ClubID,
		Location:       strings.TrimSpace(input.Location),
		LocationSearch: strings.TrimSpace(input.LocationSearch),
		Search:         strings.TrimSpace(input.Search),
		When:           when,
		Now:            s.Now(),
		Pagination:     input.Pagination,
	}, nil
}

// List returns events matching the filters, soonest first
func (s *EventService) List(input ListEventsInput) ([]models.Event, int64, error) {
	filter, err := s.filter(input)
	if err != nil {
		return nil, 0, err
	}

	events, total, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// Count counts events matching the filters
func (s *EventService) Count(input ListEventsInput) (int64, error) {
	filter, err := s.filter(input)
	if err != nil {
		return 0, err
	}

	count, err := s.eventRepo.Count(filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// ExistsByTitleAndDate reports whether the title is already used on that date
func (s *EventService) ExistsByTitleAndDate(title string, date time.Time) (bool, error) {
	found, err := s.eventRepo.ExistsByTitleAndDate(strings.TrimSpace(title), date)
	if err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}
	return found, nil
}

// Update merges the provided fields into the event and notifies every user
func (s *EventService) Update(id uint64, input UpdateEventInput) (*models.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mergeString(&event.Title, input.Title)
	mergeString(&event.Location, input.Location)
	mergeString(&event.Picture, input.Picture)
	if input.Description != nil {
		event.Description = strings.TrimSpace(*input.Description)
	}
	if input.Date != nil && !input.Date.IsZero() {
		event.Date = input.Date.UTC()
	}

	if err := s.eventRepo.Update(event); err != nil {
		if isDuplicate(err) {
			return nil, ErrEventExists
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.fanOut(input.Origin, notify.TypeEventUpdated, notify.EventUpdatedContent(*event, event.Club))

	return event, nil
}

// UpdateDate moves an event to a new date
func (s *EventService) UpdateDate(id uint64, date time.Time, origin string) (*models.Event, error) {
	if date.IsZero() {
		return nil, ErrEventDateRequired
	}
	return s.Update(id, UpdateEventInput{Date: &date, Origin: origin})
}

// Delete removes an event with its RSVPs and attendances and notifies every user
func (s *EventService) Delete(id uint64, origin string) error {
	event, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.fanOut(origin, notify.TypeEventDeleted, notify.EventDeletedContent(*event, event.Club))

	return nil
}

// fanOut writes one row per user known right now, then broadcasts once.
// The rows are not pushed to user rooms; the broadcast is the live notice.
func (s *EventService) fanOut(origin, notifType, content string) {
	ids, err := s.userRepo.ListIDs()
	if err != nil {
		s.logger.Error("notification_recipients_failed", "type", notifType, "error", err)
	} else {
		s.notifier.Store(notify.ForEach(notify.Users(ids), notifType, content))
	}
	s.notifier.Broadcast(origin, notifType, content)
}
