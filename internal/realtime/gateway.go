package realtime

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 512
)

// ErrInvalidCredentials is returned by an Identity for a token or session
// that is present but not acceptable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity resolves the rooms an authenticated request may join. ok is false
// when the request carries no credentials at all.
type Identity func(c *gin.Context) (rooms []string, ok bool, err error)

// GatewayOptions tunes the websocket endpoint.
type GatewayOptions struct {
	MessagesPerSecond float64
	Burst             int
	SendBuffer        int
	CheckOrigin       func(r *http.Request) bool

	// Identity, when set, limits an authenticated connection to its own room.
	Identity Identity
	// RequireIdentity refuses connections that present no credentials.
	RequireIdentity bool
}

// Gateway upgrades HTTP requests to websocket sessions registered in a Hub.
type Gateway struct {
	hub      *Hub
	upgrader websocket.Upgrader
	opts     GatewayOptions
	logger   *slog.Logger
}

func NewGateway(hub *Hub, opts GatewayOptions, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MessagesPerSecond <= 0 {
		opts.MessagesPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 20
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}

	return &Gateway{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		opts:   opts,
		logger: logger,
	}
}

type connectedData struct {
	ConnectionID string   `json:"connection_id"`
	Rooms        []string `json:"rooms"`
}

// ServeWS handles GET /ws?userid=&clubid=. Each presented id joins its room.
func (g *Gateway) ServeWS(c *gin.Context) {
	rooms, ok := roomsFromQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userid and clubid must be positive integers"})
		return
	}
	rooms, status, reason := g.authorize(c, rooms)
	if status != http.StatusOK {
		c.JSON(status, gin.H{"error": reason})
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Warn("websocket_upgrade_failed", "error", err)
		return
	}

	session := NewSession(g.opts.SendBuffer)
	g.hub.Register(session, rooms...)

	welcome, err := Message{
		Event: EventConnected,
		Data:  connectedData{ConnectionID: session.ID, Rooms: session.Rooms()},
	}.encode()
	if err == nil {
		session.Send(welcome)
	}

	client := &client{
		conn:    conn,
		session: session,
		hub:     g.hub,
		limiter: rate.NewLimiter(rate.Limit(g.opts.MessagesPerSecond), g.opts.Burst),
		logger:  g.logger,
	}

	g.logger.Info("client_connected", "connection_id", session.ID, "rooms", rooms)

	go client.writePump()
	client.readPump()
}

// authorize replaces the requested rooms with the caller's own room when the
// request is authenticated. Asking for any other room is forbidden.
func (g *Gateway) authorize(c *gin.Context, requested []string) ([]string, int, string) {
	if g.opts.Identity == nil {
		return requested, http.StatusOK, ""
	}

	granted, ok, err := g.opts.Identity(c)
	switch {
	case err != nil:
		return nil, http.StatusUnauthorized, "invalid credentials"
	case !ok && g.opts.RequireIdentity:
		return nil, http.StatusUnauthorized, "authentication required"
	case !ok:
		return requested, http.StatusOK, ""
	}

	for _, room := range requested {
		if !slices.Contains(granted, room) {
			return nil, http.StatusForbidden, "cannot join " + room
		}
	}
	return granted, http.StatusOK, ""
}

func roomsFromQuery(c *gin.Context) ([]string, bool) {
	var rooms []string
	if raw := c.Query("userid"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		rooms = append(rooms, UserRoom(id))
	}
	if raw := c.Query("clubid"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		rooms = append(rooms, ClubRoom(id))
	}
	return rooms, true
}

type client struct {
	conn    *websocket.Conn
	session *Session
	hub     *Hub
	limiter *rate.Limiter
	logger  *slog.Logger
}

// readPump owns the connection lifetime: when it returns the session is gone.
func (c *client) readPump() {
	defer func() {
		c.hub.Unregister(c.session)
		c.session.Close()
		c.conn.Close()
		c.logger.Info("client_disconnected", "connection_id", c.session.ID)
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("client_read_failed", "connection_id", c.session.ID, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.logger.Warn("client_rate_limited", "connection_id", c.session.ID)
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Event == EventPing {
			if pong, err := (Message{Event: EventPong}).encode(); err == nil {
				c.session.Send(pong)
			}
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.session.Messages():
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.session.Done():
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
