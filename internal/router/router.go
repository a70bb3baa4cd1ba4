package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/confdesk/confreg-backend/internal/config"
	"github.com/confdesk/confreg-backend/internal/handler"
	"github.com/confdesk/confreg-backend/internal/middleware"
	"github.com/confdesk/confreg-backend/internal/response"
	"github.com/confdesk/confreg-backend/internal/session"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	Admin        *handler.AdminRegistrationHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	sessions session.Store,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list and
	// allow credentials so the session cookie travels; otherwise allow
	// all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "Not found")
	})

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", gin.H{"status": "ok"})
	})

	// Public endpoints: no authentication.
	public := router.Group("/api/v1")
	{
		public.POST("/register", handlers.Registration.Register)
		public.GET("/stats", handlers.Registration.Stats)
	}

	// Auth endpoints. Logout and check sit outside the session guard:
	// logout must succeed without a live session and check reports the
	// unauthenticated state instead of rejecting it.
	auth := router.Group("/api/v1/admin/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/check", handlers.Auth.Check)
	}

	// Admin endpoints behind the session guard.
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminSession(sessions, cfg.SessionTTL))
	{
		adminAPI.GET("/registrations", handlers.Admin.List)
		adminAPI.DELETE("/registrations", handlers.Admin.Delete)
		adminAPI.POST("/registrations/attendance", handlers.Admin.UpdateAttendance)
	}

	return router
}
