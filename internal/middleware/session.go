package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/confdesk/confreg-backend/internal/response"
	"github.com/confdesk/confreg-backend/internal/session"
)

const (
	// ContextKeySession is the Gin context key for the admin session.
	ContextKeySession = "admin_session"
	// SessionCookieName is the cookie carrying the session identifier.
	SessionCookieName = "admin_session"
)

// RequireAdminSession validates that the request carries a live,
// non-expired admin session. It is the gate in front of every
// admin-only route: missing sessions are rejected with 401 before any
// further processing, and expired sessions are destroyed on sight.
func RequireAdminSession(store session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := SessionID(c)
		if id == "" {
			response.AbortFail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		sess, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				response.AbortFail(c, http.StatusUnauthorized, "Authentication required")
			} else {
				response.AbortFail(c, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		if sess.ExpiredAt(time.Now(), ttl) {
			_ = store.Destroy(c.Request.Context(), id)
			response.AbortFail(c, http.StatusUnauthorized, "Session expired")
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// SessionID extracts the session identifier from the session cookie or
// an Authorization bearer header. Returns "" when neither is present.
func SessionID(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	auth := c.GetHeader("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetSession retrieves the admin session placed in the Gin context by
// RequireAdminSession, or nil outside the guarded chain.
func GetSession(c *gin.Context) *session.AdminSession {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.AdminSession)
	if !ok {
		return nil
	}
	return sess
}
