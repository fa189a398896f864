// Package notify renders notification rows for domain changes. Every function
// is pure: it never fails and never touches storage or the push gateway.
package notify

import (
	"fmt"
	"strings"

	"github.com/vibevent/vibevent-api/internal/models"
)

// Notification types
const (
	TypeEventCreated       = "event-created"
	TypeEventUpdated       = "event-updated"
	TypeEventDeleted       = "event-deleted"
	TypeAchievementCreated = "achievement-created"
	TypeAchievementUpdated = "achievement-updated"
	TypeAchievementDeleted = "achievement-deleted"
	TypeUserAchEarned      = "user-ach-earned"
	TypeClubAchEarned      = "club-ach-earned"
	TypeRSVPStatusChanged  = "rsvp-status-changed"
	TypeAttendanceMarked   = "attendance-marked"
	TypeAttendanceUpdated  = "attendance-updated"
	TypeClubPointsAwarded  = "club-points-awarded"
	TypeUserPointsAwarded  = "user-points-awarded"
)

// Target identifies a notification recipient.
type Target struct {
	Kind models.TargetKind
	ID   uint64
}

func User(id uint64) Target {
	return Target{Kind: models.TargetUser, ID: id}
}

func Club(id uint64) Target {
	return Target{Kind: models.TargetClub, ID: id}
}

// Users returns one user target per id.
func Users(ids []uint64) []Target {
	targets := make([]Target, len(ids))
	for i, id := range ids {
		targets[i] = User(id)
	}
	return targets
}

// Clubs returns one club target per id.
func Clubs(ids []uint64) []Target {
	targets := make([]Target, len(ids))
	for i, id := range ids {
		targets[i] = Club(id)
	}
	return targets
}

func New(target Target, notifType, content string) models.Notification {
	return models.Notification{
		TargetKind: target.Kind,
		TargetID:   target.ID,
		Type:       notifType,
		Content:    content,
		Status:     models.NotificationUnread,
	}
}

// ForEach renders the same message for every target.
func ForEach(targets []Target, notifType, content string) []models.Notification {
	notifications := make([]models.Notification, len(targets))
	for i, target := range targets {
		notifications[i] = New(target, notifType, content)
	}
	return notifications
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func eventTitle(event models.Event) string {
	return orDefault(event.Title, "an event")
}

func clubName(club models.Club) string {
	return orDefault(club.Name, "A")
}

func achievementTitle(achievement models.Achievement) string {
	return orDefault(achievement.Title, "an achievement")
}

func username(user models.User) string {
	return orDefault(user.Username, "Someone")
}

// EventCreatedContent is shared by the per-user rows and the broadcast.
func EventCreatedContent(event models.Event, club models.Club) string {
	return fmt.Sprintf("%s Club posted a new event: %s", clubName(club), eventTitle(event))
}

func EventUpdatedContent(event models.Event, club models.Club) string {
	return fmt.Sprintf("%s Club updated the event: %s", clubName(club), eventTitle(event))
}

func EventDeletedContent(event models.Event, club models.Club) string {
	return fmt.Sprintf("%s Club deleted the event: %s", clubName(club), eventTitle(event))
}

func AchievementCreatedContent(achievement models.Achievement) string {
	return "New achievement available: " + achievementTitle(achievement)
}

func AchievementUpdatedContent(achievement models.Achievement) string {
	return "Achievement updated: " + achievementTitle(achievement)
}

func AchievementDeletedContent(achievement models.Achievement) string {
	return "Achievement removed: " + achievementTitle(achievement)
}

func UserAchievementEarned(userID uint64, achievement models.Achievement) models.Notification {
	return New(User(userID), TypeUserAchEarned, "You earned the achievement: "+achievementTitle(achievement))
}

func ClubAchievementEarned(clubID uint64, achievement models.Achievement) models.Notification {
	return New(Club(clubID), TypeClubAchEarned, "Your club earned the achievement: "+achievementTitle(achievement))
}

// RSVPStatusText maps an RSVP answer to the phrase used in club notifications.
func RSVPStatusText(status models.RSVPStatus) string {
	switch status {
	case models.RSVPStatusYes:
		return "confirmed attendance"
	case models.RSVPStatusMaybe:
		return "might attend"
	case models.RSVPStatusNo:
		return "declined the invitation"
	default:
		return fmt.Sprintf("updated RSVP to %q", string(status))
	}
}

// RSVPChanged notifies the owning club of an RSVP create or status change.
func RSVPChanged(user models.User, event models.Event, status models.RSVPStatus) models.Notification {
	content := fmt.Sprintf("%s %s for your event: %s", username(user), RSVPStatusText(status), eventTitle(event))
	return New(Club(event.ClubID), TypeRSVPStatusChanged, content)
}

// AttendanceMarked notifies the owning club.
func AttendanceMarked(user models.User, event models.Event, status models.AttendanceStatus) models.Notification {
	verb := "did not attend"
	if status == models.AttendanceStatusYes {
		verb = "attended"
	}
	content := fmt.Sprintf("%s %s your event: %s", username(user), verb, eventTitle(event))
	return New(Club(event.ClubID), TypeAttendanceMarked, content)
}

// AttendanceUpdated notifies the attendee.
func AttendanceUpdated(user models.User, event models.Event, status models.AttendanceStatus) models.Notification {
	state := "absent"
	if status == models.AttendanceStatusYes {
		state = "present"
	}
	content := fmt.Sprintf("Your attendance for %s was marked as %s", eventTitle(event), state)
	return New(User(user.ID), TypeAttendanceUpdated, content)
}

func ClubPointsAwarded(clubID uint64, event models.Event, points int64) models.Notification {
	unit := "points"
	if points == 1 {
		unit = "point"
	}
	content := fmt.Sprintf("Your club has been awarded %d %s for hosting %s!", points, unit, eventTitle(event))
	return New(Club(clubID), TypeClubPointsAwarded, content)
}

// UserPointsAwarded always reports a single point.
func UserPointsAwarded(userID uint64, event models.Event) models.Notification {
	content := fmt.Sprintf("You earned 1 point for attending %s!", eventTitle(event))
	return New(User(userID), TypeUserPointsAwarded, content)
}
