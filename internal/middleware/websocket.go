package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/realtime"
	"github.com/vibevent/vibevent-api/internal/services"
)

// WebSocketIdentity resolves a websocket caller from a bearer token, the
// token query parameter (browsers cannot set headers on an upgrade) or the
// login session, and grants the caller's own room.
func WebSocketIdentity(tokens *services.TokenService) realtime.Identity {
	return func(c *gin.Context) ([]string, bool, error) {
		tokenString := strings.TrimSpace(c.Query("token"))
		if header := c.GetHeader("Authorization"); header != "" {
			var ok bool
			tokenString, ok = strings.CutPrefix(header, "Bearer ")
			if !ok {
				return nil, false, realtime.ErrInvalidCredentials
			}
		}

		if tokenString != "" {
			principal, err := tokens.Parse(tokenString)
			if err != nil {
				return nil, false, realtime.ErrInvalidCredentials
			}
			return []string{principalRoom(principal)}, true, nil
		}

		if principal, ok := sessionPrincipal(c); ok {
			return []string{principalRoom(principal)}, true, nil
		}
		return nil, false, nil
	}
}

func principalRoom(p services.Principal) string {
	if p.Kind == models.TargetClub {
		return realtime.ClubRoom(p.ID)
	}
	return realtime.UserRoom(p.ID)
}
