package services

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingPusher remembers every push instead of writing to sockets.
type recordingPusher struct {
	mu         sync.Mutex
	rooms      []string
	senders    []string
	broadcasts []realtime.Message
}

func (p *recordingPusher) PushToRoom(room string, msg realtime.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rooms = append(p.rooms, room)
	return nil
}

func (p *recordingPusher) BroadcastExcept(senderID string, msg realtime.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.senders = append(p.senders, senderID)
	p.broadcasts = append(p.broadcasts, msg)
	return nil
}

func (p *recordingPusher) pushedRooms() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.rooms...)
}

func (p *recordingPusher) broadcastSenders() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.senders...)
}

type testEnv struct {
	db       *gorm.DB
	now      time.Time
	pusher   *recordingPusher
	notifier *Notifier

	users            *UserService
	clubs            *ClubService
	events           *EventService
	rsvps            *RSVPService
	attendance       *AttendanceService
	achievements     *AchievementService
	clubAchievements *ClubAchievementService
	userAchievements *UserAchievementService
	notifications    *NotificationService
	awards           *AwardService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))

	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	awardRepo := repository.NewAwardRepository(db)

	log := discardLogger()
	pusher := &recordingPusher{}
	notifier := NewNotifier(notificationRepo, pusher, log)
	tokens := NewTokenService("test-secret", time.Hour)

	env := &testEnv{
		db:       db,
		now:      time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		pusher:   pusher,
		notifier: notifier,

		users:            NewUserService(userRepo, tokens),
		clubs:            NewClubService(clubRepo, tokens),
		events:           NewEventService(eventRepo, clubRepo, userRepo, notifier, log),
		rsvps:            NewRSVPService(rsvpRepo, eventRepo, userRepo, notifier),
		attendance:       NewAttendanceService(attendanceRepo, eventRepo, userRepo, notifier),
		achievements:     NewAchievementService(achievementRepo, userRepo, clubRepo, notifier, log),
		clubAchievements: NewClubAchievementService(repository.NewClubAchievementRepository(db), clubRepo, achievementRepo, notifier),
		userAchievements: NewUserAchievementService(repository.NewUserAchievementRepository(db), userRepo, achievementRepo, notifier),
		notifications:    NewNotificationService(notificationRepo, notifier),
		awards:           NewAwardService(eventRepo, attendanceRepo, awardRepo, notifier, log),
	}

	clock := func() time.Time { return env.now }
	env.events.SetClock(clock)
	env.rsvps.SetClock(clock)
	env.attendance.SetClock(clock)
	env.awards.SetClock(clock)

	return env
}

func (e *testEnv) seedUsers(t *testing.T, n int) []models.User {
	t.Helper()
	var existing int64
	require.NoError(t, e.db.Model(&models.User{}).Count(&existing).Error)

	users := make([]models.User, n)
	for i := range users {
		name := fmt.Sprintf("student%d", int(existing)+i+1)
		users[i] = models.User{Username: name, Email: name + "@campus.edu", PasswordHash: "x"}
		require.NoError(t, e.db.Create(&users[i]).Error)
	}
	return users
}

func (e *testEnv) seedClub(t *testing.T, name string) *models.Club {
	t.Helper()
	club := &models.Club{Name: name, Email: name + "@clubs.campus.edu", PasswordHash: "x"}
	require.NoError(t, e.db.Create(club).Error)
	return club
}

// seedEvent stores an event without any fan-out.
func (e *testEnv) seedEvent(t *testing.T, clubID uint64, title string, date time.Time) *models.Event {
	t.Helper()
	event := &models.Event{ClubID: clubID, Title: title, Location: "Main Hall", Date: date}
	require.NoError(t, e.db.Omit("Club").Create(event).Error)
	return event
}

func (e *testEnv) seedAttendance(t *testing.T, eventID uint64, users []models.User, status models.AttendanceStatus) {
	t.Helper()
	for _, u := range users {
		a := &models.Attendance{EventID: eventID, UserID: u.ID, Status: status, Method: models.DefaultAttendanceMethod}
		require.NoError(t, e.db.Omit("Event", "User").Create(a).Error)
	}
}

func (e *testEnv) notificationsOfType(t *testing.T, notifType string) []models.Notification {
	t.Helper()
	var items []models.Notification
	require.NoError(t, e.db.Where("type = ?", notifType).Order("id ASC").Find(&items).Error)
	return items
}

func (e *testEnv) notificationsFor(t *testing.T, kind models.TargetKind, id uint64) []models.Notification {
	t.Helper()
	var items []models.Notification
	require.NoError(t, e.db.Where("target_kind = ? AND target_id = ?", kind, id).Order("id ASC").Find(&items).Error)
	return items
}

func (e *testEnv) clubPoints(t *testing.T, id uint64) int64 {
	t.Helper()
	var club models.Club
	require.NoError(t, e.db.First(&club, id).Error)
	return club.Points
}

func (e *testEnv) userPoints(t *testing.T, id uint64) int64 {
	t.Helper()
	var user models.User
	require.NoError(t, e.db.First(&user, id).Error)
	return user.Points
}
