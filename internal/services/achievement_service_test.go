package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/repository"
)

func TestAchievementService_ChangesReachUsersAndClubs(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, 3)
	env.seedClub(t, "Chess")
	env.seedClub(t, "Drama")

	achievement, err := env.achievements.Create(CreateAchievementInput{Title: "Regular", PointsRequired: 10})
	require.NoError(t, err)

	created := env.notificationsOfType(t, notify.TypeAchievementCreated)
	require.Len(t, created, 5)
	kinds := map[models.TargetKind]int{}
	for _, row := range created {
		kinds[row.TargetKind]++
		assert.Equal(t, "New achievement available: Regular", row.Content)
	}
	assert.Equal(t, map[models.TargetKind]int{models.TargetUser: 3, models.TargetClub: 2}, kinds)

	_, err = env.achievements.UpdatePointsRequired(achievement.ID, 20)
	require.NoError(t, err)
	assert.Len(t, env.notificationsOfType(t, notify.TypeAchievementUpdated), 5)

	require.NoError(t, env.achievements.Delete(achievement.ID))
	assert.Len(t, env.notificationsOfType(t, notify.TypeAchievementDeleted), 5)
}

func TestAchievementService_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.achievements.Create(CreateAchievementInput{Title: ""})
	assert.ErrorIs(t, err, ErrAchievementTitleRequired)

	_, err = env.achievements.Create(CreateAchievementInput{Title: "Regular", PointsRequired: -1})
	assert.ErrorIs(t, err, ErrNegativePointsRequired)

	_, err = env.achievements.Create(CreateAchievementInput{Title: "Regular"})
	require.NoError(t, err)
	_, err = env.achievements.Create(CreateAchievementInput{Title: "Regular"})
	assert.ErrorIs(t, err, ErrAchievementExists)

	found, err := env.achievements.ExistsByTitle("Regular")
	require.NoError(t, err)
	assert.True(t, found)

	_, err = env.achievements.Get(999)
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}

func TestAchievementLinks_NotifyOnlyTheEarner(t *testing.T) {
	env := newTestEnv(t)
	users := env.seedUsers(t, 2)
	club := env.seedClub(t, "Chess")
	achievement := &models.Achievement{Title: "Host", PointsRequired: 1}
	require.NoError(t, env.db.Create(achievement).Error)

	clubLink, err := env.clubAchievements.Create(club.ID, achievement.ID)
	require.NoError(t, err)
	assert.Equal(t, "Host", clubLink.Achievement.Title)

	_, err = env.clubAchievements.Create(club.ID, achievement.ID)
	assert.ErrorIs(t, err, ErrClubAchievementExists)

	_, err = env.userAchievements.Create(users[0].ID, achievement.ID)
	require.NoError(t, err)

	_, err = env.userAchievements.Create(999, achievement.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	clubRows := env.notificationsFor(t, models.TargetClub, club.ID)
	require.Len(t, clubRows, 1)
	assert.Equal(t, "Your club earned the achievement: Host", clubRows[0].Content)

	userRows := env.notificationsFor(t, models.TargetUser, users[0].ID)
	require.Len(t, userRows, 1)
	assert.Equal(t, "You earned the achievement: Host", userRows[0].Content)
	assert.Empty(t, env.notificationsFor(t, models.TargetUser, users[1].ID))

	exists, err := env.userAchievements.Exists(users[0].ID, achievement.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := env.clubAchievements.DeleteByAchievement(achievement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := env.userAchievements.Count(repository.AchievementLinkFilter{OwnerID: &users[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
