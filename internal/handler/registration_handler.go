package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/response"
	"github.com/confdesk/confreg-backend/internal/service"
	"github.com/confdesk/confreg-backend/internal/validator"
)

// RegistrationHandler serves the public registration surface.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register godoc
// POST /api/v1/register
// Accepts a public registration submission.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.CreateRegistrationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Please correct the errors below", validator.Details(fields))
		return
	}

	reg, emailStatus, err := h.registrationService.Register(c.Request.Context(), &req, clientInfo(c))
	if err != nil {
		if errors.Is(err, service.ErrEmailRegistered) {
			response.FailWithDetails(c, http.StatusBadRequest, "This email address is already registered",
				[]string{"email: already registered for this event"})
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Registration failed. Please try again later.")
		return
	}

	response.Success(c, http.StatusCreated, "Registration completed successfully!", gin.H{
		"registration_id": reg.ID,
		"email":           reg.Email,
		"full_name":       reg.FullName(),
		"attendance_type": reg.AttendanceType,
		"country":         reg.CountryCode,
		"email_status":    emailStatus,
	})
}

// Stats godoc
// GET /api/v1/stats
// Public aggregate counters. No per-registration data leaves here.
func (h *RegistrationHandler) Stats(c *gin.Context) {
	stats, err := h.registrationService.PublicStats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}
