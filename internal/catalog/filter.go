package catalog

import (
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
)

// Filter narrows an already-fetched product list by name/description substring
// and category. The server never filters; this runs over the full list on the
// consumer side, matching the browsing views.
func Filter(products []domain.Product, query, category string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if query != "" {
			name := strings.ToLower(p.Name)
			desc := strings.ToLower(p.Description)
			if !strings.Contains(name, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		matched = append(matched, p)
	}

	return matched
}
