package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/confdesk/confreg-backend/internal/mailer"
	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/repository"
)

// Errors surfaced by registration operations.
var (
	ErrEmailRegistered   = errors.New("email address is already registered")
	ErrNotFound          = errors.New("registration not found")
	ErrInvalidAttendance = errors.New("invalid attendance status")
)

const (
	minPageSize     = 10
	maxPageSize     = 100
	defaultPageSize = 50
)

// DefaultPageSize is the listing page size applied when the request
// does not name one.
const DefaultPageSize = defaultPageSize

// clampPage forces the page number to at least 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// clampLimit forces the page size into [minPageSize, maxPageSize].
// Out-of-range requests are clamped, not rejected.
func clampLimit(limit int) int {
	if limit < minPageSize {
		return minPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// ListResult is one page of the admin registration listing together
// with its pagination inputs after clamping and the dashboard stats.
type ListResult struct {
	Registrations []model.Registration
	Page          int
	PerPage       int
	Total         int
	Stats         *model.RegistrationStats
}

// RegistrationService implements the registration intake, query,
// export, deletion and attendance operations.
type RegistrationService struct {
	repo     *repository.RegistrationRepository
	activity *ActivityLogger
	mail     *mailer.Mailer
	log      zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(repo *repository.RegistrationRepository, activity *ActivityLogger, mail *mailer.Mailer, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{repo: repo, activity: activity, mail: mail, log: log}
}

// Register persists a validated public form submission and dispatches
// the confirmation email asynchronously. The returned string describes
// the email dispatch outcome for the response payload.
func (s *RegistrationService) Register(ctx context.Context, req *model.CreateRegistrationRequest, client ClientInfo) (*model.Registration, string, error) {
	reg := &model.Registration{
		Title:          req.Title,
		Gender:         req.Gender,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		AgeRange:       req.AgeRange,
		AttendanceType: req.AttendanceType,
		CountryCode:    req.Country,
		CountryName:    req.CountryName,
		StateOfOrigin:  req.StateOfOrigin,
		HowDidYouHear:  req.HowDidYouHear,
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailRegistered
		}
		return nil, "", err
	}

	s.activity.Record(ctx, "registration_created",
		fmt.Sprintf("Registration %d created for %s (%s), %s from %s",
			reg.ID, reg.FullName(), reg.Email, reg.AttendanceType, reg.CountryName),
		client)

	emailStatus := "Confirmation email disabled."
	if s.mail.Enabled() {
		emailStatus = "Confirmation email queued."
		// Detached from the request lifecycle: a slow or failing SMTP
		// exchange must not block or fail the registration.
		go func(firstName, lastName, email string) {
			_ = s.mail.SendConfirmation(firstName, lastName, email)
		}(reg.FirstName, reg.LastName, reg.Email)
	}

	return reg, emailStatus, nil
}

// List returns one page of registrations matching filter, the total
// match count and the whole-table dashboard statistics. Page and limit
// are clamped before use; the successful call is recorded in the
// activity log.
func (s *RegistrationService) List(ctx context.Context, filter repository.ListFilter, page, limit int, client ClientInfo) (*ListResult, error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	regs, total, err := s.repo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		s.recordQueryError(ctx, "Failed to retrieve registrations", err, client)
		return nil, err
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.recordQueryError(ctx, "Failed to compute registration statistics", err, client)
		return nil, err
	}

	s.activity.Record(ctx, "view_registrations",
		fmt.Sprintf("Viewed registrations page %d", page), client)

	return &ListResult{
		Registrations: regs,
		Page:          page,
		PerPage:       limit,
		Total:         total,
		Stats:         stats,
	}, nil
}

// Delete removes a registration by id. The row identity is captured
// first so the activity entry can name the registrant; a missing row
// is ErrNotFound and leaves no log entry.
func (s *RegistrationService) Delete(ctx context.Context, id int, client ClientInfo) error {
	ident, err := s.repo.GetIdentity(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		// The row existed a moment ago; a concurrent delete won.
		return fmt.Errorf("registration %d vanished during delete", id)
	}

	s.activity.Record(ctx, "delete_registration",
		fmt.Sprintf("Deleted registration for %s %s (%s)",
			ident.FirstName, ident.LastName, ident.Email),
		client)
	return nil
}

// UpdateAttendance marks venue attendance for a registration. Input is
// validated before any storage call; invalid input returns
// ErrInvalidAttendance without touching the database.
func (s *RegistrationService) UpdateAttendance(ctx context.Context, id int, status string, client ClientInfo) (time.Time, error) {
	if id <= 0 || !model.ValidVenueAttendance(status) {
		return time.Time{}, ErrInvalidAttendance
	}

	ident, err := s.repo.GetIdentity(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}

	updatedAt, err := s.repo.UpdateAttendance(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, fmt.Errorf("registration %d vanished during attendance update", id)
		}
		return time.Time{}, err
	}

	s.activity.Record(ctx, "attendance_update",
		fmt.Sprintf("Updated venue attendance for %s %s (ID: %d) to: %s",
			ident.FirstName, ident.LastName, id, status),
		client)
	return updatedAt, nil
}

// Export streams the filtered registrations through visit, one CSV
// record per row. The export itself is recorded best-effort; a logging
// failure never aborts the stream.
func (s *RegistrationService) Export(ctx context.Context, filter repository.ListFilter, fields []string, visit func(record []string) error, client ClientInfo) error {
	if err := s.repo.StreamExport(ctx, filter, fields, visit); err != nil {
		s.recordQueryError(ctx, "CSV export failed", err, client)
		return err
	}

	s.activity.Record(ctx, "export_registrations_csv", "Exported registrations CSV", client)
	return nil
}

// PublicStats assembles the unauthenticated aggregate statistics.
func (s *RegistrationService) PublicStats(ctx context.Context) (*model.PublicStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	byAttendance, err := s.repo.ByAttendance(ctx)
	if err != nil {
		return nil, err
	}
	byCountry, err := s.repo.ByCountry(ctx)
	if err != nil {
		return nil, err
	}
	byAge, err := s.repo.ByAge(ctx)
	if err != nil {
		return nil, err
	}

	return &model.PublicStats{
		Total:        stats.Total,
		Active:       stats.Active,
		Cancelled:    stats.Cancelled,
		ByAttendance: byAttendance,
		ByCountry:    byCountry,
		ByAge:        byAge,
		Recent:       stats.ThisWeek,
	}, nil
}

func (s *RegistrationService) recordQueryError(ctx context.Context, msg string, err error, client ClientInfo) {
	s.log.Error().Err(err).Msg(msg)
	s.activity.Record(ctx, "error", msg+": "+err.Error(), client)
}
