package realtime

import (
	"log/slog"
	"sync"
)

// Hub is the in-process room registry. Rooms change only on connect and
// disconnect and are read on every push.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]*Session
	sessions map[string]*Session
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:    make(map[string]map[string]*Session),
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Register adds the session to the hub and to each room.
func (h *Hub) Register(s *Session, rooms ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; ok {
		return
	}

	h.sessions[s.ID] = s
	for _, room := range rooms {
		members, ok := h.rooms[room]
		if !ok {
			members = make(map[string]*Session)
			h.rooms[room] = members
		}
		members[s.ID] = s
		s.rooms = append(s.rooms, room)
	}

	h.logger.Debug("session_registered", "session_id", s.ID, "rooms", rooms)
}

// Unregister removes the session from every room it joined.
func (h *Hub) Unregister(s *Session) {
	h.mu.RLock()
	_, ok := h.sessions[s.ID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Double check.
	if _, ok := h.sessions[s.ID]; !ok {
		return
	}

	delete(h.sessions, s.ID)
	for _, room := range s.rooms {
		members := h.rooms[room]
		delete(members, s.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}

	h.logger.Debug("session_unregistered", "session_id", s.ID)
}

// PushToRoom delivers msg to every session in room.
func (h *Hub) PushToRoom(room string, msg Message) error {
	data, err := msg.encode()
	if err != nil {
		return err
	}
	h.pushRaw(room, data)
	return nil
}

// BroadcastExcept delivers msg to every session except senderID.
func (h *Hub) BroadcastExcept(senderID string, msg Message) error {
	data, err := msg.encode()
	if err != nil {
		return err
	}
	h.broadcastRaw(senderID, data)
	return nil
}

func (h *Hub) pushRaw(room string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, s := range h.rooms[room] {
		if s.Send(data) {
			delivered++
		}
	}
	return delivered
}

func (h *Hub) broadcastRaw(senderID string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for id, s := range h.sessions {
		if id == senderID {
			continue
		}
		if s.Send(data) {
			delivered++
		}
	}
	return delivered
}

// SessionCount returns the number of registered sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// roomSize returns the number of sessions in room.
func (h *Hub) roomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
