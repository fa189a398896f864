package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Session) []Message {
	var out []Message
	for {
		select {
		case data := <-s.Messages():
			var msg Message
			if err := json.Unmarshal(data, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHub_PushToRoom(t *testing.T) {
	hub := NewHub(nil)

	student := NewSession(8)
	club := NewSession(8)
	both := NewSession(8)
	hub.Register(student, UserRoom(3))
	hub.Register(club, ClubRoom(3))
	hub.Register(both, UserRoom(3), ClubRoom(9))

	require.NoError(t, hub.PushToRoom(UserRoom(3), Message{Event: EventNotification, Data: "hi"}))

	assert.Len(t, drain(student), 1)
	assert.Len(t, drain(both), 1)
	// user 3 and club 3 are different rooms
	assert.Empty(t, drain(club))
}

func TestHub_PushToEmptyRoomIsDropped(t *testing.T) {
	hub := NewHub(nil)
	require.NoError(t, hub.PushToRoom(UserRoom(42), Message{Event: EventNotification}))
	assert.Equal(t, 0, hub.roomSize(UserRoom(42)))
}

func TestHub_BroadcastExcept(t *testing.T) {
	hub := NewHub(nil)

	sender := NewSession(8)
	other := NewSession(8)
	anonymous := NewSession(8)
	hub.Register(sender, ClubRoom(1))
	hub.Register(other, UserRoom(2))
	hub.Register(anonymous)

	require.NoError(t, hub.BroadcastExcept(sender.ID, Message{Event: EventBroadcast}))

	assert.Empty(t, drain(sender))
	assert.Len(t, drain(other), 1)
	assert.Len(t, drain(anonymous), 1)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil)
	s := NewSession(8)
	hub.Register(s, UserRoom(1), ClubRoom(1))

	assert.Equal(t, 1, hub.SessionCount())
	assert.Equal(t, 1, hub.roomSize(UserRoom(1)))

	hub.Unregister(s)
	hub.Unregister(s)

	assert.Equal(t, 0, hub.SessionCount())
	assert.Equal(t, 0, hub.roomSize(UserRoom(1)))
	assert.Equal(t, 0, hub.roomSize(ClubRoom(1)))

	require.NoError(t, hub.PushToRoom(UserRoom(1), Message{Event: EventNotification}))
	assert.Empty(t, drain(s))
}

func TestSession_FullBufferDrops(t *testing.T) {
	s := NewSession(1)
	assert.True(t, s.Send([]byte("a")))
	assert.False(t, s.Send([]byte("b")))

	s.Close()
	s.Close()
	assert.False(t, s.Send([]byte("c")))
}

func TestHub_ConcurrentRegisterAndPush(t *testing.T) {
	hub := NewHub(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s := NewSession(4)
			hub.Register(s, UserRoom(uint64(i%5+1)))
			if i%2 == 0 {
				hub.Unregister(s)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = hub.PushToRoom(UserRoom(uint64(i%5+1)), Message{Event: EventNotification, Data: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, hub.SessionCount())
}
