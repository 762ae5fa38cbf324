package utils

import "net/url"

// ParsePage reads page and per_page from a query string.
// Missing or non-positive values fall back to 1 and defaultPerPage.
func ParsePage(query url.Values, defaultPerPage int) (page, perPage int) {
	return parsePositiveInt(query.Get("page"), 1),
		parsePositiveInt(query.Get("per_page"), defaultPerPage)
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
