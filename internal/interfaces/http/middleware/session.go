// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie carrying the guest session ID
	SessionCookieName = "arome_session"

	sessionCookieMaxAge = 60 * 60 * 24 * 30
)

// Session assigns every browser a session ID cookie. The cart and
// order layers key guest state on it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session ID from gin context
func GetSessionID(c *gin.Context) string {
	value, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	sessionID, ok := value.(string)
	if !ok {
		return ""
	}
	return sessionID
}
