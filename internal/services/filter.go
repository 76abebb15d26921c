package services

import (
	"strings"

	"github.com/notespath/backend/internal/models"
)

// ApplyFilters returns the materials matching every non-empty filter field.
// The input order is preserved and the input slice is not modified.
//
// Query matches case-insensitively against subject, title and uploader name.
// Branch matches the branch field, or the subject field for older records that stored the branch there.
// Module and semester must match exactly.
func ApplyFilters(all []models.Material, filter models.Filter) []models.Material {
	query := strings.ToLower(filter.Query)

	result := make([]models.Material, 0, len(all))
	for _, m := range all {
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		if filter.Branch != "" && m.Branch != filter.Branch && m.Subject != filter.Branch {
			continue
		}
		if filter.Module != "" && m.Module != filter.Module {
			continue
		}
		if filter.Semester != "" && m.Semester != filter.Semester {
			continue
		}
		result = append(result, m)
	}

	return result
}

// matchesQuery reports whether any searchable field contains the lower-cased query
func matchesQuery(m models.Material, query string) bool {
	for _, field := range []string{m.Subject, m.Title, m.UploaderName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
