package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/dto"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/notify"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/repository"
)

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) PushToRoom(room string, msg realtime.Message) error {
	args := m.Called(room, msg)
	return args.Error(0)
}

func (m *mockPusher) BroadcastExcept(senderID string, msg realtime.Message) error {
	args := m.Called(senderID, msg)
	return args.Error(0)
}

// flakyRepo fails every write addressed to one recipient.
type flakyRepo struct {
	repository.NotificationRepository
	failFor uint64
}

func (r *flakyRepo) Create(n *models.Notification) error {
	if n.TargetID == r.failFor {
		return errors.New("disk full")
	}
	return r.NotificationRepository.Create(n)
}

func TestNotifier_DeliverPersistsAndPushesToTaggedRooms(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}
	pusher.On("PushToRoom", "user:1", mock.Anything).Return(nil).Once()
	pusher.On("PushToRoom", "club:1", mock.Anything).Return(nil).Once()

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), pusher, discardLogger())
	report := notifier.Deliver([]models.Notification{
		notify.New(notify.User(1), "test", "for the student"),
		notify.New(notify.Club(1), "test", "for the club"),
	})

	assert.Equal(t, DeliveryReport{Created: 2, Failed: 0}, report)
	pusher.AssertExpectations(t)
	assert.Len(t, env.notificationsOfType(t, "test"), 2)
}

func TestNotifier_StoreSkipsRoomPush(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), pusher, discardLogger())
	report := notifier.Store(notify.ForEach(notify.Users([]uint64{1, 2}), notify.TypeEventUpdated, "content"))

	assert.Equal(t, DeliveryReport{Created: 2, Failed: 0}, report)
	pusher.AssertNotCalled(t, "PushToRoom", mock.Anything, mock.Anything)
	assert.Len(t, env.notificationsOfType(t, notify.TypeEventUpdated), 2)
}

func TestNotifier_PushCarriesWireShape(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}
	var pushed realtime.Message
	pusher.On("PushToRoom", "user:7", mock.Anything).Run(func(args mock.Arguments) {
		pushed = args.Get(1).(realtime.Message)
	}).Return(nil)

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), pusher, discardLogger())
	stored, err := notifier.DeliverOne(notify.New(notify.User(7), "manual", "hello"))
	require.NoError(t, err)

	assert.Equal(t, realtime.EventNotification, pushed.Event)
	wire, ok := pushed.Data.(dto.NotificationDTO)
	require.True(t, ok)
	assert.Equal(t, stored.ID, wire.ID)
	assert.Equal(t, uint64(7), wire.UserID)
	assert.Equal(t, models.NotificationUnread, wire.Status)
}

func TestNotifier_FailedRecipientDoesNotStopOthers(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}
	pusher.On("PushToRoom", mock.Anything, mock.Anything).Return(nil)

	repo := &flakyRepo{NotificationRepository: repository.NewNotificationRepository(env.db), failFor: 2}
	notifier := NewNotifier(repo, pusher, discardLogger())

	report := notifier.Deliver(notify.ForEach(notify.Users([]uint64{1, 2, 3}), "test", "content"))

	assert.Equal(t, DeliveryReport{Created: 2, Failed: 1}, report)
	pusher.AssertNotCalled(t, "PushToRoom", "user:2", mock.Anything)
	pusher.AssertCalled(t, "PushToRoom", "user:1", mock.Anything)
	pusher.AssertCalled(t, "PushToRoom", "user:3", mock.Anything)
	assert.Len(t, env.notificationsOfType(t, "test"), 2)
}

func TestNotifier_PushFailureKeepsStoredRow(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}
	pusher.On("PushToRoom", mock.Anything, mock.Anything).Return(errors.New("relay down"))

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), pusher, discardLogger())
	report := notifier.Deliver([]models.Notification{notify.New(notify.Club(4), "test", "content")})

	assert.Equal(t, DeliveryReport{Created: 1, Failed: 0}, report)
	assert.Len(t, env.notificationsFor(t, models.TargetClub, 4), 1)
}

func TestNotifier_BroadcastSkipsOrigin(t *testing.T) {
	env := newTestEnv(t)
	pusher := &mockPusher{}
	pusher.On("BroadcastExcept", "conn-9", mock.MatchedBy(func(msg realtime.Message) bool {
		data, ok := msg.Data.(dto.BroadcastDTO)
		return ok && msg.Event == realtime.EventBroadcast && data.Type == notify.TypeEventCreated
	})).Return(nil).Once()

	notifier := NewNotifier(repository.NewNotificationRepository(env.db), pusher, discardLogger())
	notifier.Broadcast("conn-9", notify.TypeEventCreated, "Chess Club posted a new event: Blitz")

	pusher.AssertExpectations(t)
}

func TestNotifier_NilPusherStillStores(t *testing.T) {
	env := newTestEnv(t)
	notifier := NewNotifier(repository.NewNotificationRepository(env.db), nil, nil)

	report := notifier.Deliver([]models.Notification{notify.New(notify.User(1), "test", "content")})
	notifier.Broadcast("", "test", "content")

	assert.Equal(t, 1, report.Created)
}
