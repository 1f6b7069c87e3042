package ingredient

import (
	"kedaistock-backend/domain"
	"strings"
)

// Filter narrows a loaded ingredient list by case-insensitive name search
// and an optional category. Order is preserved from the input; the input
// slice is never mutated.
func Filter(items []domain.IngredientResponse, searchText string, categoryID string) []domain.IngredientResponse {
	search := strings.ToLower(strings.TrimSpace(searchText))

	filtered := make([]domain.IngredientResponse, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// HasFilters reports whether either filter input is set.
func HasFilters(searchText string, categoryID string) bool {
	return strings.TrimSpace(searchText) != "" || categoryID != ""
}
