package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/realtime"
)

func TestNotificationService_ScopedToPrincipal(t *testing.T) {
	env := newTestEnv(t)
	student := Principal{Kind: models.TargetUser, ID: 1}
	club := Principal{Kind: models.TargetClub, ID: 1}

	mine, err := env.notifications.Create(CreateNotificationInput{TargetKind: models.TargetUser, TargetID: 1, Type: "manual", Content: "hello student"})
	require.NoError(t, err)
	_, err = env.notifications.Create(CreateNotificationInput{TargetKind: models.TargetClub, TargetID: 1, Type: "manual", Content: "hello club"})
	require.NoError(t, err)

	assert.Contains(t, env.pusher.pushedRooms(), realtime.UserRoom(1))
	assert.Contains(t, env.pusher.pushedRooms(), realtime.ClubRoom(1))

	got, err := env.notifications.Get(student, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello student", got.Content)

	_, err = env.notifications.Get(club, mine.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, env.notifications.Delete(club, mine.ID), ErrNotificationNotFound)

	list, total, err := env.notifications.List(club, NotificationQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "hello club", list[0].Content)
}

func TestNotificationService_ReadStateAndBulkDelete(t *testing.T) {
	env := newTestEnv(t)
	student := Principal{Kind: models.TargetUser, ID: 5}
	for _, content := range []string{"one", "two", "three"} {
		_, err := env.notifications.Create(CreateNotificationInput{TargetKind: models.TargetUser, TargetID: 5, Type: "manual", Content: content})
		require.NoError(t, err)
	}

	list, _, err := env.notifications.List(student, NotificationQuery{Search: "two"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	read, err := env.notifications.UpdateStatus(student, list[0].ID, models.NotificationRead)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationRead, read.Status)

	unread, err := env.notifications.Count(student, NotificationQuery{Status: models.NotificationUnread})
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	marked, err := env.notifications.MarkAllRead(student)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	hasUnread, err := env.notifications.Exists(student, NotificationQuery{Status: models.NotificationUnread})
	require.NoError(t, err)
	assert.False(t, hasUnread)

	_, err = env.notifications.Count(student, NotificationQuery{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	deleted, err := env.notifications.DeleteAllForTarget(student)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestNotificationService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.notifications.Create(CreateNotificationInput{TargetKind: "team", TargetID: 1, Type: "manual", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidTargetKind)

	_, err = env.notifications.Create(CreateNotificationInput{TargetKind: models.TargetUser, TargetID: 1, Content: "x"})
	assert.ErrorIs(t, err, ErrNotificationTypeRequired)

	_, err = env.notifications.Create(CreateNotificationInput{TargetKind: models.TargetUser, TargetID: 1, Type: "manual"})
	assert.ErrorIs(t, err, ErrNotificationContentRequired)
}
