package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this user")
)

// AttendanceService records who showed up to an event
type AttendanceService struct {
	clock
	attendanceRepo repository.AttendanceRepository
	eventRepo      repository.EventRepository
	userRepo       repository.UserRepository
	notifier       *Notifier
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier *Notifier,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// CreateAttendanceInput represents input for marking attendance
type CreateAttendanceInput struct {
	EventID uint64
	UserID  uint64
	Status  models.AttendanceStatus
	Method  string
}

// AttendanceFilter selects attendances
type AttendanceFilter struct {
	EventID *uint64
	UserID  *uint64
	Status  models.AttendanceStatus
}

func (f AttendanceFilter) toRepo() (repository.ParticipationFilter, error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.ParticipationFilter{}, ErrInvalidStatus
	}
	return repository.ParticipationFilter{EventID: f.EventID, UserID: f.UserID, Status: string(f.Status)}, nil
}

// Create marks a user present or absent and notifies the organizing club
func (s *AttendanceService) Create(input CreateAttendanceInput) (*models.Attendance, error) {
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

	method := strings.TrimSpace(input.Method)
	if method == "" {
		method = models.DefaultAttendanceMethod
	}

	attendance := &models.Attendance{
		EventID: event.ID,
		UserID:  user.ID,
		Status:  input.Status,
		Method:  method,
	}
	if err := s.attendanceRepo.Create(attendance); err != nil {
		if isDuplicate(err) {
			return nil, ErrAttendanceExists
		}
		return nil, fmt.Errorf("failed to create attendance: %w", err)
	}

	s.notifier.Deliver([]models.Notification{notify.AttendanceMarked(*user, *event, attendance.Status)})

	return attendance, nil
}

// Get returns an attendance by id
func (s *AttendanceService) Get(id uint64) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	return attendance, nil
}

// List returns attendances matching the filter
func (s *AttendanceService) List(filter AttendanceFilter) ([]models.Attendance, error) {
	f, err := filter.toRepo()
	if err != nil {
		return nil, err
	}
	attendances, err := s.attendanceRepo.List(f)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	return attendances, nil
}

// Count counts attendances matching the filter
func (s *AttendanceService) Count(filter AttendanceFilter) (int64, error) {
	f, err := filter.toRepo()
	if err != nil {
		return 0, err
	}
	count, err := s.attendanceRepo.Count(f)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances: %w", err)
	}
	return count, nil
}

// Exists reports whether attendance was recorded for the user
func (s *AttendanceService) Exists(eventID, userID uint64) (bool, error) {
	count, err := s.Count(AttendanceFilter{EventID: &eventID, UserID: &userID})
	return count > 0, err
}

// UsersByStatus returns the users marked with status for the event
func (s *AttendanceService) UsersByStatus(eventID uint64, status models.AttendanceStatus) ([]models.User, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	ids, err := s.attendanceRepo.UserIDsByStatus(eventID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendees: %w", err)
	}
	return users, nil
}

// UpdateStatus changes a mark and notifies both the club and the attendee
func (s *AttendanceService) UpdateStatus(id uint64, status models.AttendanceStatus) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	attendance, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	event, err := openEvent(s.eventRepo, attendance.EventID, s.Now)
	if err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.UpdateStatus(id, status); err != nil {
		if isNotFound(err) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}
	attendance.Status = status

	user, err := s.userRepo.FindByID(attendance.UserID)
	if err != nil {
		user = &models.User{ID: attendance.UserID}
	}
	s.notifier.Deliver([]models.Notification{
		notify.AttendanceMarked(*user, *event, status),
		notify.AttendanceUpdated(*user, *event, status),
	})

	return attendance, nil
}

// Delete removes an attendance
func (s *AttendanceService) Delete(id uint64) error {
	if err := s.attendanceRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}

// DeleteByEvent removes every attendance of an event
func (s *AttendanceService) DeleteByEvent(eventID uint64) (int64, error) {
	deleted, err := s.attendanceRepo.DeleteByEvent(eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendances: %w", err)
	}
	return deleted, nil
}

// DeleteByUser removes every attendance of a user
func (s *AttendanceService) DeleteByUser(userID uint64) (int64, error) {
	deleted, err := s.attendanceRepo.DeleteByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendances: %w", err)
	}
	return deleted, nil
}
