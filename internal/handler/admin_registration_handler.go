package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/repository"
	"github.com/confdesk/confreg-backend/internal/response"
	"github.com/confdesk/confreg-backend/internal/service"
	"github.com/confdesk/confreg-backend/internal/validator"
)

const exportFlushEvery = 200

// AdminRegistrationHandler serves the session-guarded registration
// management endpoints.
type AdminRegistrationHandler struct {
	registrationService *service.RegistrationService
	log                 zerolog.Logger
}

// NewAdminRegistrationHandler creates a new AdminRegistrationHandler.
func NewAdminRegistrationHandler(registrationService *service.RegistrationService, log zerolog.Logger) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{registrationService: registrationService, log: log}
}

func listFilterFromQuery(c *gin.Context) repository.ListFilter {
	return repository.ListFilter{
		Search:         c.Query("search"),
		Status:         c.Query("status"),
		Country:        c.Query("country"),
		AttendanceType: c.Query("attendance_type"),
		DateFrom:       c.Query("date_from"),
		DateTo:         c.Query("date_to"),
	}
}

// List godoc
// GET /api/v1/admin/registrations
// Filtered, paginated listing with dashboard statistics. With
// export=csv the same filters feed a CSV download instead.
func (h *AdminRegistrationHandler) List(c *gin.Context) {
	filter := listFilterFromQuery(c)
	if err := filter.Validate(); err != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Invalid filter parameters", []string{err.Error()})
		return
	}

	if c.Query("export") == "csv" {
		h.exportCSV(c, filter)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize)))

	result, err := h.registrationService.List(c.Request.Context(), filter, page, limit, clientInfo(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "Failed to retrieve registrations")
		return
	}

	response.Success(c, http.StatusOK, "Registrations retrieved", gin.H{
		"registrations": result.Registrations,
		"pagination":    response.NewPagination(result.Page, result.PerPage, result.Total),
		"statistics":    result.Stats,
		"filters": gin.H{
			"search":          filter.Search,
			"status":          filter.Status,
			"country":         filter.Country,
			"attendance_type": filter.AttendanceType,
			"date_from":       filter.DateFrom,
			"date_to":         filter.DateTo,
		},
	})
}

// exportCSV streams the filtered registrations as a CSV attachment.
// Headers go out before the first row, so a mid-stream failure can only
// be logged and the download truncated.
func (h *AdminRegistrationHandler) exportCSV(c *gin.Context, filter repository.ListFilter) {
	fields := repository.SelectExportFields(c.Query("fields"))

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="registrations.csv"`)
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(fields); err != nil {
		h.log.Error().Err(err).Msg("csv export: header write failed")
		return
	}

	written := 0
	err := h.registrationService.Export(c.Request.Context(), filter, fields, func(record []string) error {
		if err := w.Write(record); err != nil {
			return err
		}
		written++
		if written%exportFlushEvery == 0 {
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			c.Writer.Flush()
		}
		return nil
	}, clientInfo(c))
	if err != nil {
		h.log.Error().Err(err).Msg("csv export: stream aborted")
		return
	}

	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Error().Err(err).Msg("csv export: final flush failed")
	}
}

// Delete godoc
// DELETE /api/v1/admin/registrations
// Permanently removes one registration named in the request body.
func (h *AdminRegistrationHandler) Delete(c *gin.Context) {
	var req model.DeleteRegistrationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "A valid registration id is required", validator.Details(fields))
		return
	}

	if err := h.registrationService.Delete(c.Request.Context(), req.ID, clientInfo(c)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Registration not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "Failed to delete registration")
		return
	}

	response.Success(c, http.StatusOK, "Registration deleted successfully", gin.H{
		"registration_id": req.ID,
	})
}

// UpdateAttendance godoc
// POST /api/v1/admin/registrations/attendance
// Marks venue attendance as present, absent or pending.
func (h *AdminRegistrationHandler) UpdateAttendance(c *gin.Context) {
	var req model.UpdateAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithDetails(c, http.StatusBadRequest, "Invalid attendance update", validator.Details(fields))
		return
	}

	updatedAt, err := h.registrationService.UpdateAttendance(c.Request.Context(), req.RegistrationID, req.Status, clientInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAttendance):
			response.Fail(c, http.StatusBadRequest, "Invalid attendance status")
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "Registration not found")
		default:
			response.Fail(c, http.StatusInternalServerError, "Failed to update attendance")
		}
		return
	}

	response.Success(c, http.StatusOK, "Attendance updated successfully", gin.H{
		"registration_id": req.RegistrationID,
		"status":          req.Status,
		"updated_at":      updatedAt,
	})
}
