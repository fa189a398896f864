package realtime

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRelay_DeliversAcrossHubs(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	newRelay := func(hub *Hub) *RedisRelay {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		relay := NewRedisRelay(client, "test:push", hub, nil)
		require.NoError(t, relay.Start(ctx))
		t.Cleanup(func() { relay.Close() })
		return relay
	}

	hubA := NewHub(nil)
	hubB := NewHub(nil)
	relayA := newRelay(hubA)
	newRelay(hubB)

	onB := NewSession(8)
	hubB.Register(onB, UserRoom(7))

	require.NoError(t, relayA.PushToRoom(UserRoom(7), Message{Event: EventNotification, Data: "points"}))

	assert.Eventually(t, func() bool {
		return len(onB.Messages()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRedisRelay_BroadcastHonoursSender(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hub := NewHub(nil)
	relay := NewRedisRelay(client, "test:push", hub, nil)
	require.NoError(t, relay.Start(ctx))
	t.Cleanup(func() { relay.Close() })

	sender := NewSession(8)
	listener := NewSession(8)
	hub.Register(sender)
	hub.Register(listener)

	require.NoError(t, relay.BroadcastExcept(sender.ID, Message{Event: EventBroadcast}))

	assert.Eventually(t, func() bool {
		return len(listener.Messages()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, sender.Messages(), 0)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, "127.0.0.1:1", "")
	assert.Error(t, err)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRedisRelay_StartLogsOnceAndClientClosesAfter(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out lockedBuffer
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	relay := NewRedisRelay(client, "test:push", NewHub(nil), slog.New(slog.NewTextHandler(&out, nil)))
	require.NoError(t, relay.Start(ctx))

	assert.Equal(t, 1, strings.Count(out.String(), "push_relay_started"))

	require.NoError(t, relay.Close())
	assert.NoError(t, client.Close())
}
