package model

import "time"

// Registration statuses.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Venue attendance statuses an admin can mark on a registration.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendancePending = "pending"
)

// ValidVenueAttendance reports whether status is one of the three
// allowed venue attendance values.
func ValidVenueAttendance(status string) bool {
	switch status {
	case AttendancePresent, AttendanceAbsent, AttendancePending:
		return true
	}
	return false
}

// Registration represents a single attendee registration row.
// Rows are created by the public submission flow and mutated only by
// admin attendance updates or deletion.
type Registration struct {
	ID                       int        `json:"id"`
	Title                    string     `json:"title"`
	Gender                   string     `json:"gender"`
	FirstName                string     `json:"first_name"`
	LastName                 string     `json:"last_name"`
	Phone                    string     `json:"phone"`
	Email                    string     `json:"email"`
	AgeRange                 string     `json:"age_range"`
	AttendanceType           string     `json:"attendance_type"`
	CountryCode              string     `json:"country_code"`
	CountryName              string     `json:"country_name"`
	StateOfOrigin            string     `json:"state_of_origin"`
	HowDidYouHear            string     `json:"how_did_you_hear"`
	RegistrationDate         time.Time  `json:"registration_date"`
	Status                   string     `json:"status"`
	VenueAttendanceStatus    *string    `json:"venue_attendance_status"`
	VenueAttendanceUpdatedAt *time.Time `json:"venue_attendance_updated_at,omitempty"`
}

// FullName returns the registrant's display name.
func (r *Registration) FullName() string {
	return r.FirstName + " " + r.LastName
}

// CreateRegistrationRequest is the public form submission payload.
// Field names mirror the registration form, not the column names.
type CreateRegistrationRequest struct {
	Title          string `json:"title" binding:"required,max=10"`
	Gender         string `json:"gender" binding:"required,max=20"`
	FirstName      string `json:"firstName" binding:"required,max=100"`
	LastName       string `json:"lastName" binding:"required,max=100"`
	Phone          string `json:"phone" binding:"required,phone"`
	Email          string `json:"email" binding:"required,email,max=255"`
	AgeRange       string `json:"ageRange" binding:"required,max=20"`
	AttendanceType string `json:"attendanceType" binding:"required,oneof=Physical Virtual"`
	Country        string `json:"country" binding:"required,max=5"`
	CountryName    string `json:"countryName" binding:"omitempty,max=100"`
	StateOfOrigin  string `json:"stateOfOrigin" binding:"required,max=100"`
	HowDidYouHear  string `json:"howDidYouHear" binding:"required,max=50"`
}

// DeleteRegistrationRequest identifies the row to remove.
type DeleteRegistrationRequest struct {
	ID int `json:"id" binding:"required,gt=0"`
}

// UpdateAttendanceRequest marks venue attendance for a registrant.
type UpdateAttendanceRequest struct {
	RegistrationID int    `json:"registration_id" binding:"required,gt=0"`
	Status         string `json:"status" binding:"required,oneof=present absent pending"`
}

// RegistrationStats are the dashboard-wide summary counters returned
// with every admin listing. They cover the whole table and ignore the
// active filter set.
type RegistrationStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Cancelled int `json:"cancelled"`
	Physical  int `json:"physical"`
	Virtual   int `json:"virtual"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
}

// CountBucket is a labelled count used by grouped statistics.
type CountBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PublicStats is the aggregate payload of the public statistics endpoint.
type PublicStats struct {
	Total        int           `json:"total"`
	Active       int           `json:"active"`
	Cancelled    int           `json:"cancelled"`
	ByAttendance []CountBucket `json:"by_attendance"`
	ByCountry    []CountBucket `json:"by_country"`
	ByAge        []CountBucket `json:"by_age"`
	Recent       int           `json:"recent"`
}
