package repository

import (
	"reflect"
	"testing"
)

func TestSelectExportFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "empty input defaults to full allow-list",
			raw:  "",
			want: exportableFields,
		},
		{
			name: "unknown field is silently dropped",
			raw:  "id,email,nonexistent_col",
			want: []string{"id", "email"},
		},
		{
			name: "request order is preserved",
			raw:  "email,id,first_name",
			want: []string{"email", "id", "first_name"},
		},
		{
			name: "whitespace is trimmed",
			raw:  " id , last_name ,phone",
			want: []string{"id", "last_name", "phone"},
		},
		{
			name: "duplicates collapse to first occurrence",
			raw:  "id,email,id,email",
			want: []string{"id", "email"},
		},
		{
			name: "all-unknown input defaults to full allow-list",
			raw:  "password_hash,internal_notes",
			want: exportableFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectExportFields(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectExportFields(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSelectExportFieldsNeverLeaksUnlistedColumns(t *testing.T) {
	allowed := make(map[string]bool, len(exportableFields))
	for _, f := range exportableFields {
		allowed[f] = true
	}

	got := SelectExportFields("id,venue_attendance_status,country_code,email")
	for _, f := range got {
		if !allowed[f] {
			t.Errorf("selected field %q is outside the allow-list", f)
		}
	}
}

func TestSelectExportFieldsReturnsCopyOfDefault(t *testing.T) {
	got := SelectExportFields("")
	got[0] = "mutated"
	if exportableFields[0] != "id" {
		t.Error("default selection aliases the allow-list backing array")
	}
}
