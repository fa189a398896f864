package realtime

import (
	"encoding/json"
	"fmt"
)

// Envelope event names
const (
	EventConnected    = "connected"
	EventNotification = "notification"
	EventBroadcast    = "broadcast"
	EventPing         = "ping"
	EventPong         = "pong"
)

// Message is the JSON envelope written to websocket clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

func (m Message) encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %w", m.Event, err)
	}
	return data, nil
}

// UserRoom is the room every connection presenting a user id joins.
func UserRoom(id uint64) string {
	return fmt.Sprintf("user:%d", id)
}

// ClubRoom is the room every connection presenting a club id joins.
func ClubRoom(id uint64) string {
	return fmt.Sprintf("club:%d", id)
}

// Pusher delivers messages to live connections. Delivery is fire-and-forget:
// a room without connections drops the message silently.
type Pusher interface {
	PushToRoom(room string, msg Message) error
	BroadcastExcept(senderID string, msg Message) error
}
