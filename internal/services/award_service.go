package services

import (
	"fmt"
	"log/slog"

	"github.com/vibevent/vibevent-api/internal/constants"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

// ClubAward is the outcome of awarding a club for hosting an event.
type ClubAward struct {
	EventID        uint64 `json:"event_id"`
	ClubID         uint64 `json:"club_id"`
	Attendees      int64  `json:"attendees"`
	Points         int64  `json:"points"`
	AlreadyAwarded bool   `json:"already_awarded"`
}

// AttendanceAward is the outcome of awarding an event's attendees.
type AttendanceAward struct {
	EventID        uint64 `json:"event_id"`
	UsersAwarded   int    `json:"users_awarded"`
	AlreadyAwarded int    `json:"already_awarded"`
}

// AwardService pays gamification points once an event is over.
//
// Every payment is recorded in the award ledger keyed by event and recipient,
// so calling an award endpoint again never pays twice.
type AwardService struct {
	clock
	eventRepo      repository.EventRepository
	attendanceRepo repository.AttendanceRepository
	awardRepo      repository.AwardRepository
	notifier       *Notifier
	logger         *slog.Logger
}

// NewAwardService creates a new AwardService
func NewAwardService(
	eventRepo repository.EventRepository,
	attendanceRepo repository.AttendanceRepository,
	awardRepo repository.AwardRepository,
	notifier *Notifier,
	logger *slog.Logger,
) *AwardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AwardService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		awardRepo:      awardRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// finishedEvent loads an event whose grace window has passed. The window is
// exclusive: at exactly start+30m the event is still within it.
func (s *AwardService) finishedEvent(eventID uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	if !s.Now().After(event.Date.Add(constants.AwardGraceWindow)) {
		return nil, ErrWithinGraceWindow
	}
	return event, nil
}

// AwardEventPoints pays the hosting club one point per five confirmed
// attendees. Nothing is recorded when the count rounds down to zero, so a
// later call can still pay once more attendance is marked.
func (s *AwardService) AwardEventPoints(eventID uint64) (*ClubAward, error) {
	event, err := s.finishedEvent(eventID)
	if err != nil {
		return nil, err
	}

	result := &ClubAward{EventID: event.ID, ClubID: event.ClubID}

	if previous, err := s.awardRepo.Find(event.ID, models.TargetClub, event.ClubID); err == nil {
		result.Points = previous.Points
		result.AlreadyAwarded = true
		return result, nil
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check award ledger: %w", err)
	}

	attendees, err := s.attendanceRepo.Count(repository.ParticipationFilter{
		EventID: &event.ID,
		Status:  string(models.AttendanceStatusYes),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees: %w", err)
	}
	result.Attendees = attendees

	points := attendees / constants.AttendeesPerClubPoint
	if points == 0 {
		return result, nil
	}

	award := &models.PointsAward{
		EventID:       event.ID,
		RecipientKind: models.TargetClub,
		RecipientID:   event.ClubID,
		Points:        points,
	}
	if err := s.awardRepo.Award(award); err != nil {
		switch {
		case isDuplicate(err):
			// a concurrent call won the insert
			previous, findErr := s.awardRepo.Find(event.ID, models.TargetClub, event.ClubID)
			if findErr != nil {
				return nil, fmt.Errorf("failed to read award ledger: %w", findErr)
			}
			result.Points = previous.Points
			result.AlreadyAwarded = true
			return result, nil
		case isNotFound(err):
			return nil, ErrClubNotFound
		default:
			return nil, fmt.Errorf("failed to award club points: %w", err)
		}
	}
	result.Points = points

	s.logger.Info("club_points_awarded", "event_id", event.ID, "club_id", event.ClubID, "points", points)
	s.notifier.Deliver([]models.Notification{notify.ClubPointsAwarded(event.ClubID, *event, points)})

	return result, nil
}

// AwardAttendancePoints pays one point to every confirmed attendee that has
// not been paid for this event yet.
func (s *AwardService) AwardAttendancePoints(eventID uint64) (*AttendanceAward, error) {
	event, err := s.finishedEvent(eventID)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.attendanceRepo.UserIDsByStatus(event.ID, models.AttendanceStatusYes)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}

	result := &AttendanceAward{EventID: event.ID}
	var notifications []models.Notification

	// Every committed payment gets its notification, even when a later one fails.
	defer func() {
		if len(notifications) > 0 {
			s.logger.Info("attendance_points_awarded", "event_id", event.ID, "users", len(notifications))
			s.notifier.Deliver(notifications)
		}
	}()

	for _, userID := range userIDs {
		award := &models.PointsAward{
			EventID:       event.ID,
			RecipientKind: models.TargetUser,
			RecipientID:   userID,
			Points:        constants.PointsPerAttendance,
		}
		err := s.awardRepo.Award(award)
		switch {
		case err == nil:
			result.UsersAwarded++
			notifications = append(notifications, notify.UserPointsAwarded(userID, *event))
		case isDuplicate(err):
			result.AlreadyAwarded++
		case isNotFound(err):
			s.logger.Warn("attendee_missing", "event_id", event.ID, "user_id", userID)
		default:
			return nil, fmt.Errorf("failed to award attendance points: %w", err)
		}
	}

	return result, nil
}

// Awards lists the ledger rows of an event
func (s *AwardService) Awards(eventID uint64) ([]models.PointsAward, error) {
	awards, err := s.awardRepo.ListByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	return awards, nil
}
