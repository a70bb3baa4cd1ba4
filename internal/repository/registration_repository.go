package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/confdesk/confreg-backend/internal/model"
)

// Sentinel errors surfaced by registration data access.
var (
	ErrDuplicateEmail = errors.New("email address is already registered")
	ErrNotFound       = errors.New("registration not found")
)

const registrationColumns = `id, title, gender, first_name, last_name, phone, email, age_range,
	attendance_type, country_code, country_name, state_of_origin, how_did_you_hear,
	registration_date, status, venue_attendance_status, venue_attendance_updated_at`

// RegistrationRepository handles registration data access. All reads
// and writes go through parameterized statements; no state is cached
// outside the database.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func scanRegistration(row pgx.Row, r *model.Registration) error {
	return row.Scan(
		&r.ID, &r.Title, &r.Gender, &r.FirstName, &r.LastName, &r.Phone, &r.Email,
		&r.AgeRange, &r.AttendanceType, &r.CountryCode, &r.CountryName, &r.StateOfOrigin,
		&r.HowDidYouHear, &r.RegistrationDate, &r.Status,
		&r.VenueAttendanceStatus, &r.VenueAttendanceUpdatedAt,
	)
}

// Create inserts a new registration and fills in the generated id,
// registration date and default status.
func (r *RegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO registrations (title, gender, first_name, last_name, phone, email, age_range,
			attendance_type, country_code, country_name, state_of_origin, how_did_you_hear)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, registration_date, status`,
		reg.Title, reg.Gender, reg.FirstName, reg.LastName, reg.Phone, reg.Email,
		reg.AgeRange, reg.AttendanceType, reg.CountryCode, reg.CountryName,
		reg.StateOfOrigin, reg.HowDidYouHear,
	).Scan(&reg.ID, &reg.RegistrationDate, &reg.Status)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// List retrieves registrations matching filter, newest first, along
// with the total count of matching rows. The count runs as a parallel
// query over identical predicates so pagination metadata stays correct
// even when the requested page is empty.
func (r *RegistrationRepository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]model.Registration, int, error) {
	where, args := filter.whereClause(1)

	var total int
	countQuery := "SELECT COUNT(*) FROM registrations " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := "SELECT " + registrationColumns + " FROM registrations " + where +
		" ORDER BY registration_date DESC LIMIT $" + strconv.Itoa(argIdx) +
		" OFFSET $" + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := []model.Registration{}
	for rows.Next() {
		var reg model.Registration
		if err := scanRegistration(rows, &reg); err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

// Stats computes the dashboard summary counters over the entire table.
// It deliberately ignores any active listing filters.
func (r *RegistrationRepository) Stats(ctx context.Context) (*model.RegistrationStats, error) {
	s := &model.RegistrationStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*) FILTER (WHERE attendance_type = 'Physical'),
			COUNT(*) FILTER (WHERE attendance_type = 'Virtual'),
			COUNT(*) FILTER (WHERE registration_date::date = CURRENT_DATE),
			COUNT(*) FILTER (WHERE registration_date::date >= CURRENT_DATE - 7)
		 FROM registrations`,
	).Scan(&s.Total, &s.Active, &s.Cancelled, &s.Physical, &s.Virtual, &s.Today, &s.ThisWeek)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RegistrationIdentity is the minimal row identity captured before a
// mutation so the activity log can name the registrant.
type RegistrationIdentity struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

// GetIdentity retrieves just enough of a registration to name it in
// log entries. Returns ErrNotFound when the row does not exist.
func (r *RegistrationRepository) GetIdentity(ctx context.Context, id int) (*RegistrationIdentity, error) {
	ident := &RegistrationIdentity{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email FROM registrations WHERE id = $1`, id,
	).Scan(&ident.ID, &ident.FirstName, &ident.LastName, &ident.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ident, nil
}

// Delete removes a registration by primary key and reports how many
// rows were affected.
func (r *RegistrationRepository) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateAttendance sets the venue attendance status and stamps the
// update time, returning the stamp. Returns ErrNotFound when no row
// matches.
func (r *RegistrationRepository) UpdateAttendance(ctx context.Context, id int, status string) (time.Time, error) {
	var updatedAt time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE registrations
		 SET venue_attendance_status = $1, venue_attendance_updated_at = NOW()
		 WHERE id = $2
		 RETURNING venue_attendance_updated_at`,
		status, id,
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return updatedAt, nil
}

// StreamExport runs the filtered export query and invokes visit once
// per row with the values of the selected fields rendered as strings.
// Rows are visited as they arrive from the database; nothing is
// materialized, so export volume is unbounded by pagination. fields
// must already be intersected with the allow-list (SelectExportFields).
func (r *RegistrationRepository) StreamExport(ctx context.Context, filter ListFilter, fields []string, visit func(record []string) error) error {
	where, args := filter.whereClause(1)

	// Field names come from the fixed allow-list, never from raw input.
	query := "SELECT " + strings.Join(fields, ", ") + " FROM registrations " + where +
		" ORDER BY registration_date DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	record := make([]string, len(fields))
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		for i, v := range values {
			record[i] = renderValue(v)
		}
		if err := visit(record); err != nil {
			return err
		}
	}
	return rows.Err()
}

// renderValue formats a scanned column value for CSV output.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

// ByAttendance groups registration counts by attendance type.
func (r *RegistrationRepository) ByAttendance(ctx context.Context) ([]model.CountBucket, error) {
	return r.groupCounts(ctx,
		`SELECT attendance_type, COUNT(*) FROM registrations GROUP BY attendance_type`)
}

// ByCountry returns the ten countries with the most registrations.
func (r *RegistrationRepository) ByCountry(ctx context.Context) ([]model.CountBucket, error) {
	return r.groupCounts(ctx,
		`SELECT country_name, COUNT(*) FROM registrations GROUP BY country_name ORDER BY COUNT(*) DESC LIMIT 10`)
}

// ByAge groups registration counts by age range.
func (r *RegistrationRepository) ByAge(ctx context.Context) ([]model.CountBucket, error) {
	return r.groupCounts(ctx,
		`SELECT age_range, COUNT(*) FROM registrations GROUP BY age_range`)
}

func (r *RegistrationRepository) groupCounts(ctx context.Context, query string) ([]model.CountBucket, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []model.CountBucket{}
	for rows.Next() {
		var b model.CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
