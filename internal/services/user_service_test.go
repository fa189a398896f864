package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/utils"
)

func TestUserService_SignupAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.Signup(SignupUserInput{Username: " alice ", Email: "Alice@Campus.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@campus.edu", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	byEmail, err := env.users.Authenticate("alice@campus.edu", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.Token)
	assert.Equal(t, user.ID, byEmail.Account.ID)

	byName, err := env.users.Authenticate("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.Account.ID)

	_, err = env.users.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.users.Authenticate("nobody@campus.edu", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_SignupValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Signup(SignupUserInput{Username: "bob", Email: "bob@campus.edu", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = env.users.Signup(SignupUserInput{Username: "  ", Email: "bob@campus.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = env.users.Signup(SignupUserInput{Username: "bob", Email: "bob@campus.edu", Password: "secret1"})
	require.NoError(t, err)

	_, err = env.users.Signup(SignupUserInput{Username: "bobby", Email: "BOB@campus.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestUserService_UpdateMergesFields(t *testing.T) {
	env := newTestEnv(t)
	user, err := env.users.Signup(SignupUserInput{Username: "carol", Email: "carol@campus.edu", Password: "secret1"})
	require.NoError(t, err)

	picture := "https://cdn.campus.edu/carol.png"
	blank := ""
	updated, err := env.users.Update(user.ID, UpdateUserInput{Username: &blank, Picture: &picture})
	require.NoError(t, err)
	assert.Equal(t, "carol", updated.Username)
	assert.Equal(t, picture, updated.Picture)

	password := "newsecret"
	_, err = env.users.Update(user.ID, UpdateUserInput{Password: &password})
	require.NoError(t, err)
	_, err = env.users.Authenticate("carol", "newsecret")
	assert.NoError(t, err)

	_, err = env.users.Update(9999, UpdateUserInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_PointsNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 1)

	user, err := env.users.UpdatePoints(users[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.Points)

	user, err = env.users.UpdatePoints(users[0].ID, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.Points)

	_, err = env.users.UpdatePoints(9999, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_LeaderboardAndLookup(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 3)
	_, err := env.users.UpdatePoints(users[2].ID, 9)
	require.NoError(t, err)

	top, err := env.users.Top(0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, users[2].ID, top[0].ID)

	rank, err := env.users.Rank(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rank)

	found, err := env.users.UsernameExists(users[1].Username)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = env.users.EmailExists("missing@campus.edu")
	require.NoError(t, err)
	assert.False(t, found)

	byIdentifier, err := env.users.GetByIdentifier(users[1].Email)
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, byIdentifier.ID)

	list, total, err := env.users.List(ListUsersInput{Pagination: utils.NewPaginationParams(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
}

func TestClubService_SignupAuthenticateAndDelete(t *testing.T) {
	env := newTestEnv(t)

	club, err := env.clubs.Signup(SignupClubInput{Name: "Chess", Email: "chess@clubs.campus.edu", Password: "secret1", Description: "Weekly blitz"})
	require.NoError(t, err)

	_, err = env.clubs.Signup(SignupClubInput{Name: "Chess", Email: "other@clubs.campus.edu", Password: "secret1"})
	assert.ErrorIs(t, err, ErrClubExists)

	result, err := env.clubs.Authenticate("Chess", "secret1")
	require.NoError(t, err)
	principal, err := env.clubs.tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, Principal{Kind: models.TargetClub, ID: club.ID}, principal)

	env.seedEvent(t, club.ID, "Blitz", env.now.Add(24*time.Hour))
	require.NoError(t, env.clubs.Delete(club.ID))

	var events int64
	require.NoError(t, env.db.Model(&models.Event{}).Count(&events).Error)
	assert.Zero(t, events)

	assert.ErrorIs(t, env.clubs.Delete(club.ID), ErrClubNotFound)
}
