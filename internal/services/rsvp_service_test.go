package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
)

func TestRSVPService_EveryChangeNotifiesTheClub(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))

	rsvp, err := env.rsvps.Create(CreateRSVPInput{EventID: event.ID, UserID: users[0].ID, Status: models.RSVPStatusYes})
	require.NoError(t, err)

	_, err = env.rsvps.UpdateStatus(rsvp.ID, models.RSVPStatusMaybe)
	require.NoError(t, err)

	rows := env.notificationsFor(t, models.TargetClub, club.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, notify.TypeRSVPStatusChanged, rows[0].Type)
	assert.Equal(t, "student1 confirmed attendance for your event: Blitz", rows[0].Content)
	assert.Equal(t, "student1 might attend for your event: Blitz", rows[1].Content)
	assert.Empty(t, env.notificationsFor(t, models.TargetUser, users[0].ID))
}

func TestRSVPService_RejectsPastEventsAndBadStatus(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	past := env.seedEvent(t, club.ID, "Yesterday", env.now.Add(-24*time.Hour))
	future := env.seedEvent(t, club.ID, "Tomorrow", env.now.Add(24*time.Hour))

	_, err := env.rsvps.Create(CreateRSVPInput{EventID: past.ID, UserID: users[0].ID, Status: models.RSVPStatusYes})
	assert.ErrorIs(t, err, ErrEventInPast)

	_, err = env.rsvps.Create(CreateRSVPInput{EventID: future.ID, UserID: users[0].ID, Status: "perhaps"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.rsvps.Create(CreateRSVPInput{EventID: future.ID, UserID: 999, Status: models.RSVPStatusYes})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.rsvps.Create(CreateRSVPInput{EventID: 999, UserID: users[0].ID, Status: models.RSVPStatusYes})
	assert.ErrorIs(t, err, ErrEventNotFound)

	rsvp, err := env.rsvps.Create(CreateRSVPInput{EventID: future.ID, UserID: users[0].ID, Status: models.RSVPStatusYes})
	require.NoError(t, err)

	env.now = future.Date.Add(time.Minute)
	_, err = env.rsvps.UpdateStatus(rsvp.ID, models.RSVPStatusNo)
	assert.ErrorIs(t, err, ErrEventInPast)
}

func TestRSVPService_DuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))
	input := CreateRSVPInput{EventID: event.ID, UserID: users[0].ID, Status: models.RSVPStatusYes}

	_, err := env.rsvps.Create(input)
	require.NoError(t, err)

	input.Status = models.RSVPStatusNo
	_, err = env.rsvps.Create(input)
	assert.ErrorIs(t, err, ErrRSVPExists)
}

func TestRSVPService_ConcurrentDuplicatesLeaveOneRow(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))
	input := CreateRSVPInput{EventID: event.ID, UserID: users[0].ID, Status: models.RSVPStatusYes}

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.rsvps.Create(input)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrRSVPExists)
	}
	assert.Equal(t, 1, succeeded)

	count, err := env.rsvps.Count(RSVPFilter{EventID: &event.ID, UserID: &users[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRSVPService_UsersByStatusAndBulkDelete(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 3)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))

	statuses := []models.RSVPStatus{models.RSVPStatusYes, models.RSVPStatusNo, models.RSVPStatusYes}
	for i, status := range statuses {
		_, err := env.rsvps.Create(CreateRSVPInput{EventID: event.ID, UserID: users[i].ID, Status: status})
		require.NoError(t, err)
	}

	going, err := env.rsvps.UsersByStatus(event.ID, models.RSVPStatusYes)
	require.NoError(t, err)
	require.Len(t, going, 2)
	assert.Equal(t, users[0].ID, going[0].ID)
	assert.Equal(t, users[2].ID, going[1].ID)

	exists, err := env.rsvps.Exists(event.ID, users[1].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := env.rsvps.DeleteByUser(users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = env.rsvps.DeleteByEvent(event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
