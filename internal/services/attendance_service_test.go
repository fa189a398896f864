package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
)

func TestAttendanceService_CreateNotifiesClub(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))

	present, err := env.attendance.Create(CreateAttendanceInput{EventID: event.ID, UserID: users[0].ID, Status: models.AttendanceStatusYes})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAttendanceMethod, present.Method)

	_, err = env.attendance.Create(CreateAttendanceInput{EventID: event.ID, UserID: users[1].ID, Status: models.AttendanceStatusNo, Method: "qr"})
	require.NoError(t, err)

	rows := env.notificationsFor(t, models.TargetClub, club.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, "student1 attended your event: Blitz", rows[0].Content)
	assert.Equal(t, "student2 did not attend your event: Blitz", rows[1].Content)

	_, err = env.attendance.Create(CreateAttendanceInput{EventID: event.ID, UserID: users[0].ID, Status: models.AttendanceStatusNo})
	assert.ErrorIs(t, err, ErrAttendanceExists)
}

func TestAttendanceService_UpdateNotifiesClubAndAttendee(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(time.Hour))

	attendance, err := env.attendance.Create(CreateAttendanceInput{EventID: event.ID, UserID: users[0].ID, Status: models.AttendanceStatusYes})
	require.NoError(t, err)

	updated, err := env.attendance.UpdateStatus(attendance.ID, models.AttendanceStatusNo)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusNo, updated.Status)

	clubRows := env.notificationsFor(t, models.TargetClub, club.ID)
	require.Len(t, clubRows, 2)
	assert.Equal(t, notify.TypeAttendanceMarked, clubRows[1].Type)

	userRows := env.notificationsFor(t, models.TargetUser, users[0].ID)
	require.Len(t, userRows, 1)
	assert.Equal(t, notify.TypeAttendanceUpdated, userRows[0].Type)
	assert.Equal(t, "Your attendance for Blitz was marked as absent", userRows[0].Content)

	_, err = env.attendance.UpdateStatus(attendance.ID, "late")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAttendanceService_RejectsPastEvent(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)
	club := env.seedClub(t, "Chess")
	event := env.seedEvent(t, club.ID, "Blitz", env.now.Add(-time.Minute))

	_, err := env.attendance.Create(CreateAttendanceInput{EventID: event.ID, UserID: users[0].ID, Status: models.AttendanceStatusYes})
	assert.ErrorIs(t, err, ErrEventInPast)
}
