package repository

import (
	"reflect"
	"testing"
)

func TestWhereClauseEmptyFilter(t *testing.T) {
	where, args := ListFilter{}.whereClause(1)
	if where != "" {
		t.Errorf("empty filter produced clause %q", where)
	}
	if args != nil {
		t.Errorf("empty filter produced args %v", args)
	}
}

func TestWhereClauseSearchExpandsToFourParams(t *testing.T) {
	where, args := ListFilter{Search: "ada"}.whereClause(1)

	want := "WHERE (first_name ILIKE $1 OR last_name ILIKE $2 OR email ILIKE $3 OR phone ILIKE $4)"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	wantArgs := []any{"%ada%", "%ada%", "%ada%", "%ada%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestWhereClauseSinglepredicates(t *testing.T) {
	tests := []struct {
		name      string
		filter    ListFilter
		wantWhere string
		wantArg   any
	}{
		{"status", ListFilter{Status: "active"}, "WHERE status = $1", "active"},
		{"country", ListFilter{Country: "NG"}, "WHERE country_code = $1", "NG"},
		{"attendance", ListFilter{AttendanceType: "Virtual"}, "WHERE attendance_type = $1", "Virtual"},
		{"date from", ListFilter{DateFrom: "2026-01-01"}, "WHERE registration_date::date >= $1", "2026-01-01"},
		{"date to", ListFilter{DateTo: "2026-02-01"}, "WHERE registration_date::date <= $1", "2026-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.whereClause(1)
			if where != tt.wantWhere {
				t.Errorf("clause = %q, want %q", where, tt.wantWhere)
			}
			if len(args) != 1 || args[0] != tt.wantArg {
				t.Errorf("args = %v, want [%v]", args, tt.wantArg)
			}
		})
	}
}

func TestWhereClauseCombinesWithAnd(t *testing.T) {
	f := ListFilter{
		Search:         "jo",
		Status:         "active",
		Country:        "NG",
		AttendanceType: "Physical",
		DateFrom:       "2026-01-01",
		DateTo:         "2026-03-01",
	}
	where, args := f.whereClause(1)

	want := "WHERE (first_name ILIKE $1 OR last_name ILIKE $2 OR email ILIKE $3 OR phone ILIKE $4)" +
		" AND status = $5 AND country_code = $6 AND attendance_type = $7" +
		" AND registration_date::date >= $8 AND registration_date::date <= $9"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}

	wantArgs := []any{"%jo%", "%jo%", "%jo%", "%jo%", "active", "NG", "Physical", "2026-01-01", "2026-03-01"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestWhereClauseHonorsStartIndex(t *testing.T) {
	where, args := ListFilter{Status: "cancelled", Country: "GH"}.whereClause(4)

	want := "WHERE status = $4 AND country_code = $5"
	if where != want {
		t.Errorf("clause = %q, want %q", where, want)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want two values", args)
	}
}

func TestValidateDateBounds(t *testing.T) {
	tests := []struct {
		name    string
		filter  ListFilter
		wantErr bool
	}{
		{"no dates", ListFilter{Status: "active"}, false},
		{"well-formed bounds", ListFilter{DateFrom: "2026-01-01", DateTo: "2026-02-01"}, false},
		{"garbage date_from", ListFilter{DateFrom: "banana"}, true},
		{"garbage date_to", ListFilter{DateTo: "01/02/2026"}, true},
		{"truncated date", ListFilter{DateFrom: "2026-01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !(ListFilter{}).IsZero() {
		t.Error("zero filter reported non-zero")
	}
	if (ListFilter{Status: "active"}).IsZero() {
		t.Error("status filter reported zero")
	}
}
