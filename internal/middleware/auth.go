package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/constants"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/services"
)

// RequireAuth accepts a bearer token or the session written at login.
// A presented but invalid token is rejected even when a session exists.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				apierrors.Unauthorized(c, "Authorization header must be: Bearer <token>")
				c.Abort()
				return
			}

			principal, err := tokens.Parse(tokenString)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					apierrors.TokenExpired(c)
				} else {
					apierrors.Unauthorized(c, "Invalid token")
				}
				c.Abort()
				return
			}
			setPrincipal(c, principal)
			c.Next()
			return
		}

		principal, ok := sessionPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// SavePrincipal stores the principal in the session, when sessions are enabled.
func SavePrincipal(c *gin.Context, p services.Principal) error {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyPrincipalKind, string(p.Kind))
	session.Set(principalKey(p.Kind), p.ID)
	return session.Save()
}

// ClearPrincipal removes the login session, when sessions are enabled.
func ClearPrincipal(c *gin.Context) error {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	return session.Save()
}

func sessionPrincipal(c *gin.Context) (services.Principal, bool) {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return services.Principal{}, false
	}
	session := sessions.Default(c)
	kind, _ := session.Get(constants.ContextKeyPrincipalKind).(string)
	p := services.Principal{Kind: models.TargetKind(kind)}
	if !p.Kind.Valid() {
		return services.Principal{}, false
	}
	id, ok := toUint64(session.Get(principalKey(p.Kind)))
	if !ok || id == 0 {
		return services.Principal{}, false
	}
	p.ID = id
	return p, true
}

func principalKey(kind models.TargetKind) string {
	if kind == models.TargetClub {
		return constants.ContextKeyClubID
	}
	return constants.ContextKeyUserID
}

func setPrincipal(c *gin.Context, p services.Principal) {
	c.Set(constants.ContextKeyPrincipalKind, p.Kind)
	c.Set(principalKey(p.Kind), p.ID)
}

// GetPrincipal retrieves the authenticated account from context
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipalKind)
	if !exists {
		return services.Principal{}, false
	}
	kind, ok := value.(models.TargetKind)
	if !ok || !kind.Valid() {
		return services.Principal{}, false
	}
	id, ok := lookupID(c, principalKey(kind))
	if !ok {
		return services.Principal{}, false
	}
	return services.Principal{Kind: kind, ID: id}, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	return lookupID(c, constants.ContextKeyUserID)
}

// GetClubID retrieves the current club ID from context
func GetClubID(c *gin.Context) (uint64, bool) {
	return lookupID(c, constants.ContextKeyClubID)
}

// ConnectionID is the caller's websocket connection, if it sent one.
func ConnectionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(constants.HeaderConnectionID))
}

func lookupID(c *gin.Context, key string) (uint64, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	return toUint64(value)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
