package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/constants"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, p)
}

func TestRequireAuth_Bearer(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue(services.Principal{Kind: models.TargetClub, ID: 7})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kind":"club","id":7}`, w.Body.String())
}

func TestRequireAuth_Rejects(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	other, err := services.NewTokenService("other-secret", time.Hour).
		Issue(services.Principal{Kind: models.TargetUser, ID: 1})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(tokens), whoami)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "foreign signature", header: "Bearer " + other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAuth_Session(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SavePrincipal(c, services.Principal{Kind: models.TargetUser, ID: 3}))
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, ClearPrincipal(c))
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", RequireAuth(tokens), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kind":"user","id":3}`, w.Body.String())
}

func TestWebSocketIdentity(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	clubToken, err := tokens.Issue(services.Principal{Kind: models.TargetClub, ID: 4})
	require.NoError(t, err)
	userToken, err := tokens.Issue(services.Principal{Kind: models.TargetUser, ID: 9})
	require.NoError(t, err)

	identity := WebSocketIdentity(tokens)

	tests := []struct {
		name    string
		url     string
		header  string
		rooms   []string
		ok      bool
		invalid bool
	}{
		{name: "bearer header", url: "/ws", header: "Bearer " + clubToken, rooms: []string{realtime.ClubRoom(4)}, ok: true},
		{name: "token query", url: "/ws?token=" + userToken, rooms: []string{realtime.UserRoom(9)}, ok: true},
		{name: "garbage token", url: "/ws?token=nope", invalid: true},
		{name: "wrong scheme", url: "/ws", header: "Basic abc", invalid: true},
		{name: "anonymous", url: "/ws?userid=9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			rooms, ok, err := identity(c)
			if tt.invalid {
				assert.ErrorIs(t, err, realtime.ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.rooms, rooms)
		})
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(constants.ContextKeyUserID, 5)
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(5), id)

	c.Set(constants.ContextKeyUserID, -1)
	_, ok = GetUserID(c)
	assert.False(t, ok)
}

func TestConnectionID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set(constants.HeaderConnectionID, " abc-123 ")

	assert.Equal(t, "abc-123", ConnectionID(c))
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.POST("/api/events", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodPost, "/api/events", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/api/users/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/9", nil))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=http_request")
	assert.Contains(t, out, "path=/api/users/:id")
	assert.Contains(t, out, "status=404")
}
