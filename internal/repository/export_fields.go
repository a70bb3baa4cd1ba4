package repository

import "strings"

// exportableFields is the fixed allow-list of columns the CSV export
// may project, in default output order. Anything outside this list is
// never selectable regardless of client input.
var exportableFields = []string{
	"id", "title", "gender", "first_name", "last_name", "email", "phone",
	"age_range", "attendance_type", "country_name", "state_of_origin",
	"how_did_you_hear", "registration_date", "status",
}

// SelectExportFields intersects a caller-supplied comma-separated
// column list against the export allow-list. Unknown fields and
// duplicates are silently dropped and request order is preserved. An
// empty intersection yields the full allow-list.
func SelectExportFields(raw string) []string {
	allowed := make(map[string]bool, len(exportableFields))
	for _, f := range exportableFields {
		allowed[f] = true
	}

	var selected []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || !allowed[f] || seen[f] {
			continue
		}
		seen[f] = true
		selected = append(selected, f)
	}

	if len(selected) == 0 {
		return append([]string(nil), exportableFields...)
	}
	return selected
}
