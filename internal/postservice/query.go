package postservice

import "strings"

// AllCategories is the category filter value that matches every post.
const AllCategories = "All"

type Query struct {
	Search   string
	Category string
}

// Matches reports whether p contains the search text in its title or excerpt, ignoring
// case, and belongs to the selected category. An empty category means AllCategories.
func (q Query) Matches(p Post) bool {
	if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
		return false
	}

	if q.Search == "" {
		return true
	}

	search := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(p.Title), search) || strings.Contains(strings.ToLower(p.Excerpt), search)
}

// Filter keeps the posts matching q in their original order. posts is not modified.
func Filter(posts []Post, q Query) []Post {
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if q.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// Categories lists AllCategories followed by each distinct category in first-seen order.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{}, len(posts))
	categories := []string{AllCategories}

	for _, p := range posts {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}
