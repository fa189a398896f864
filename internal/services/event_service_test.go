package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/repository"
)

func TestEventService_CreateNotifiesEveryUserOnce(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 3)
	club := env.seedClub(t, "Chess")

	event, err := env.events.Create(CreateEventInput{
		ClubID:   club.ID,
		Title:    "Blitz night",
		Date:     env.now.Add(48 * time.Hour),
		Location: "Main Hall",
		Origin:   "conn-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chess", event.Club.Name)

	rows := env.notificationsOfType(t, notify.TypeEventCreated)
	require.Len(t, rows, len(users))
	for _, row := range rows {
		assert.Equal(t, models.TargetUser, row.TargetKind)
		assert.Equal(t, "Chess Club posted a new event: Blitz night", row.Content)
	}
	assert.Empty(t, env.notificationsFor(t, models.TargetClub, club.ID))

	assert.Empty(t, env.pusher.pushedRooms())
	assert.Equal(t, []string{"conn-1"}, env.pusher.broadcastSenders())
}

func TestEventService_ConnectedUserHearsOncePerChange(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")

	hub := realtime.NewHub(discardLogger())
	session := realtime.NewSession(8)
	hub.Register(session, realtime.UserRoom(users[0].ID))

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), hub, discardLogger())
	events := NewEventService(
		repository.NewEventRepository(env.db),
		repository.NewClubRepository(env.db),
		repository.NewUserRepository(env.db),
		notifier,
		discardLogger(),
	)
	events.SetClock(func() time.Time { return env.now })

	_, err := events.Create(CreateEventInput{
		ClubID:   club.ID,
		Title:    "Blitz night",
		Date:     env.now.Add(24 * time.Hour),
		Location: "Main Hall",
		Origin:   "other",
	})
	require.NoError(t, err)

	var frames []string
	for done := false; !done; {
		select {
		case data := <-session.Messages():
			var frame struct {
				Event string `json:"event"`
			}
			require.NoError(t, json.Unmarshal(data, &frame))
			frames = append(frames, frame.Event)
		default:
			done = true
		}
	}
	assert.Equal(t, []string{realtime.EventBroadcast}, frames)
	assert.Len(t, env.notificationsOfType(t, notify.TypeEventCreated), 1)
}

func TestEventService_FanOutUsesUserSnapshot(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, 2)
	club := env.seedClub(t, "Chess")

	event, err := env.events.Create(CreateEventInput{ClubID: club.ID, Title: "Blitz", Date: env.now.Add(time.Hour), Location: "Hall"})
	require.NoError(t, err)

	env.seedUsers(t, 1)
	title := "Blitz finals"
	_, err = env.events.Update(event.ID, UpdateEventInput{Title: &title})
	require.NoError(t, err)

	assert.Len(t, env.notificationsOfType(t, notify.TypeEventCreated), 2)
	assert.Len(t, env.notificationsOfType(t, notify.TypeEventUpdated), 3)
}

func TestEventService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	club := env.seedClub(t, "Chess")
	date := env.now.Add(time.Hour)

	_, err := env.events.Create(CreateEventInput{ClubID: 999, Title: "Blitz", Date: date, Location: "Hall"})
	assert.ErrorIs(t, err, ErrClubNotFound)

	_, err = env.events.Create(CreateEventInput{ClubID: club.ID, Title: " ", Date: date, Location: "Hall"})
	assert.ErrorIs(t, err, ErrEventTitleRequired)

	_, err = env.events.Create(CreateEventInput{ClubID: club.ID, Title: "Blitz", Location: "Hall"})
	assert.ErrorIs(t, err, ErrEventDateRequired)

	_, err = env.events.Create(CreateEventInput{ClubID: club.ID, Title: "Blitz", Date: date, Location: "Hall"})
	require.NoError(t, err)
	_, err = env.events.Create(CreateEventInput{ClubID: club.ID, Title: "Blitz", Date: date, Location: "Annex"})
	assert.ErrorIs(t, err, ErrEventExists)
}

func TestEventService_DeleteCascadesAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))
	_, err := env.rsvps.Create(CreateRSVPInput{EventID: event.ID, UserID: users[0].ID, Status: models.RSVPStatusYes})
	require.NoError(t, err)

	require.NoError(t, env.events.Delete(event.ID, ""))

	rows := env.notificationsOfType(t, notify.TypeEventDeleted)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chess Club deleted the event: Blitz", rows[0].Content)

	count, err := env.rsvps.Count(RSVPFilter{EventID: &event.ID})
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, env.events.Delete(event.ID, ""), ErrEventNotFound)
}

func TestEventService_ListUpcomingAndPast(t *testing.T) {
	env := newTestEnv(t)
	club := env.seedClub(t, "Chess")
	env.seedEvent(t, club.ID, "Yesterday", env.now.Add(-24*time.Hour))
	env.seedEvent(t, club.ID, "Tomorrow", env.now.Add(24*time.Hour))

	upcoming, total, err := env.events.List(ListEventsInput{When: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Tomorrow", upcoming[0].Title)

	past, err := env.events.Count(ListEventsInput{When: "past"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), past)

	_, err = env.events.Count(ListEventsInput{When: "someday"})
	assert.ErrorIs(t, err, ErrInvalidEventWhen)
}
