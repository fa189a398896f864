package realtime

import (
	"sync"

	"github.com/google/uuid"
)

const DefaultSendBuffer = 64

// Session is one live connection as seen by the Hub.
type Session struct {
	ID    string
	send  chan []byte
	done  chan struct{}
	once  sync.Once
	rooms []string
}

func NewSession(buffer int) *Session {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Session{
		ID:   uuid.NewString(),
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send queues data without blocking. It returns false when the session is
// closed or its buffer is full; the message is dropped in both cases.
func (s *Session) Send(data []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

// Messages is the outbound queue drained by the connection writer.
func (s *Session) Messages() <-chan []byte {
	return s.send
}

// Done is closed once the session is closed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close is safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// Rooms returns the rooms the session was registered with.
func (s *Session) Rooms() []string {
	return append([]string(nil), s.rooms...)
}
