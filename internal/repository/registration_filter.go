package repository

import (
	"fmt"
	"strings"
	"time"
)

const filterDateLayout = "2006-01-02"

// ListFilter holds the optional, independent predicates of the admin
// registration listing and CSV export. Zero-valued fields impose no
// constraint; supplied ones are combined with AND.
type ListFilter struct {
	// Search matches case-insensitive substrings of first name, last
	// name, email or phone (OR across the four columns).
	Search         string
	Status         string
	Country        string
	AttendanceType string
	// DateFrom and DateTo bound registration_date at date-only
	// granularity, both inclusive.
	DateFrom string
	DateTo   string
}

// IsZero reports whether no predicate is set.
func (f ListFilter) IsZero() bool {
	return f == ListFilter{}
}

// Validate checks the date bounds parse as YYYY-MM-DD. A malformed
// date is caller error and must be rejected before the filter reaches
// a query; the remaining predicates are plain equality or substring
// matches and take any string.
func (f ListFilter) Validate() error {
	for _, bound := range []struct{ name, value string }{
		{"date_from", f.DateFrom},
		{"date_to", f.DateTo},
	} {
		if bound.value == "" {
			continue
		}
		if _, err := time.Parse(filterDateLayout, bound.value); err != nil {
			return fmt.Errorf("%s must be a date in YYYY-MM-DD format", bound.name)
		}
	}
	return nil
}

// whereClause renders the filter as a SQL WHERE fragment with numbered
// placeholders starting at startIdx, plus the matching bound arguments.
// Filter values are never interpolated into the query text. Returns an
// empty string when no predicate is set.
func (f ListFilter) whereClause(startIdx int) (string, []any) {
	var conds []string
	var args []any
	idx := startIdx

	if f.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			idx, idx+1, idx+2, idx+3))
		like := "%" + f.Search + "%"
		args = append(args, like, like, like, like)
		idx += 4
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", idx))
		args = append(args, f.Status)
		idx++
	}
	if f.Country != "" {
		conds = append(conds, fmt.Sprintf("country_code = $%d", idx))
		args = append(args, f.Country)
		idx++
	}
	if f.AttendanceType != "" {
		conds = append(conds, fmt.Sprintf("attendance_type = $%d", idx))
		args = append(args, f.AttendanceType)
		idx++
	}
	if f.DateFrom != "" {
		conds = append(conds, fmt.Sprintf("registration_date::date >= $%d", idx))
		args = append(args, f.DateFrom)
		idx++
	}
	if f.DateTo != "" {
		conds = append(conds, fmt.Sprintf("registration_date::date <= $%d", idx))
		args = append(args, f.DateTo)
		idx++
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
