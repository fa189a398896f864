package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCounter reports how many push connections are open.
type SessionCounter interface {
	SessionCount() int
}

// HealthHandler reports database and gateway status.
type HealthHandler struct {
	ping     func() error
	sessions SessionCounter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(ping func() error, sessions SessionCounter) *HealthHandler {
	return &HealthHandler{
		ping:     ping,
		sessions: sessions,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	database := "ok"
	if err := h.ping(); err != nil {
		status = http.StatusServiceUnavailable
		database = "unavailable"
	}

	connections := 0
	if h.sessions != nil {
		connections = h.sessions.SessionCount()
	}

	c.JSON(status, gin.H{
		"status":      http.StatusText(status),
		"database":    database,
		"connections": connections,
		"message":     "Vibevent API is running",
	})
}
