package services

import "strings"

// FilterService stores the file tree filter query.
type FilterService struct {
	Query string
}

// NewFilterService creates a new FilterService with an optional initial filter.
func NewFilterService(initialFilter string) *FilterService {
	return &FilterService{Query: initialFilter}
}

// Set replaces the filter query.
func (f *FilterService) Set(query string) {
	f.Query = query
}

// Clear drops the filter query.
func (f *FilterService) Clear() {
	f.Query = ""
}

// Active reports whether a non-empty filter is applied.
func (f *FilterService) Active() bool {
	return strings.TrimSpace(f.Query) != ""
}

// Matches reports whether a slash path matches the query. Matching is a
// case-insensitive substring test; an inactive filter matches everything.
func (f *FilterService) Matches(path string) bool {
	query := strings.TrimSpace(f.Query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(query))
}
