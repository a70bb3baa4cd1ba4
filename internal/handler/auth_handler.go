package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/confdesk/confreg-backend/internal/middleware"
	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/response"
	"github.com/confdesk/confreg-backend/internal/service"
	"github.com/confdesk/confreg-backend/internal/session"
	"github.com/confdesk/confreg-backend/internal/validator"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	sessions    session.Store
	ttl         time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions session.Store, ttl time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, ttl: ttl}
}

func adminSummary(s *session.AdminSession) gin.H {
	return gin.H{
		"id":        s.AdminID,
		"username":  s.Username,
		"email":     s.Email,
		"full_name": s.FullName,
		"role":      s.Role,
	}
}

func clientInfo(c *gin.Context) service.ClientInfo {
	return service.ClientInfo{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// Login godoc
// POST /api/v1/admin/auth/login
// Verifies username/email + password and establishes a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Username and password are required", validator.Details(fields))
		return
	}

	sess, id, err := h.authService.Login(c.Request.Context(), req.Username, req.Password, clientInfo(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, id, int(h.ttl.Seconds()), "/", "", false, true)

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"admin":      adminSummary(sess),
		"session_id": id,
	})
}

// Logout godoc
// POST /api/v1/admin/auth/logout
// Destroys the session if one exists. Idempotent: calling it without a
// live session still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout(c.Request.Context(), middleware.SessionID(c), clientInfo(c))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, "Logout successful", gin.H{})
}

// Check godoc
// GET /api/v1/admin/auth/check
// Reports authentication status. An absent session is not an error; an
// expired one is destroyed and rejected.
func (h *AuthHandler) Check(c *gin.Context) {
	id := middleware.SessionID(c)
	if id == "" {
		response.Success(c, http.StatusOK, "Not authenticated", gin.H{"authenticated": false})
		return
	}

	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			response.Success(c, http.StatusOK, "Not authenticated", gin.H{"authenticated": false})
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if sess.ExpiredAt(time.Now(), h.ttl) {
		_ = h.sessions.Destroy(c.Request.Context(), id)
		response.Fail(c, http.StatusUnauthorized, "Session expired")
		return
	}

	response.Success(c, http.StatusOK, "Authenticated", gin.H{
		"authenticated": true,
		"admin":         adminSummary(sess),
	})
}
