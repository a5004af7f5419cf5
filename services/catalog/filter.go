package catalog

import (
	"strings"

	"servicehub/models"
)

// Filter returns the providers matching the selected category and the free-text query.
// A nil category and an empty query each match everything. The query is matched
// case-insensitively as a substring of the title, description or category name.
func Filter(providers []models.ServiceProvider, category *models.ServiceCategory, query string) []models.ServiceProvider {
	needle := strings.ToLower(query)
	out := make([]models.ServiceProvider, 0, len(providers))
	for _, p := range providers {
		if category != nil && p.Category.ID != category.ID {
			continue
		}
		if needle != "" && !matchesQuery(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p models.ServiceProvider, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category.Name), needle)
}
