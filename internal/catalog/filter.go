package catalog

import (
	"strings"

	"fitbuddy/backend/internal/model"
)

// Filter keeps the entries matching category and whose title contains query,
// ignoring case. An empty category or "All" matches every entry.
func Filter(items []model.Exercise, category, query string) []model.Exercise {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Exercise, 0, len(items))
	for _, item := range items {
		if category != "" && category != model.CategoryAll && item.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(item.Title), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func Categories() []string {
	out := make([]string, len(model.Categories))
	copy(out, model.Categories)
	return out
}
