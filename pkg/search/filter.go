// Package search implements the substring filtering and pagination used by
// the list pages. The Postgres store pushes the same semantics down to SQL.
package search

import "strings"

// Normalize trims the raw query. An empty result means "no filter".
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Contains is a case-insensitive substring match.
func Contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Filter keeps the items whose field contains query, preserving order.
// An empty query returns items as is.
func Filter[T any](items []T, query string, field func(T) string) []T {
	query = Normalize(query)
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Contains(field(it), query) {
			out = append(out, it)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE wildcards so q matches literally.
func EscapeLike(q string) string {
	return likeEscaper.Replace(q)
}
