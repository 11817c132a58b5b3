package inventory

import "strings"

// Matches reports whether query occurs, case-insensitively, anywhere in the
// row's fields. A blank query matches every row.
func Matches(row *Row, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if row == nil {
		return false
	}
	return strings.Contains(strings.ToLower(row.String()), q)
}

// Filter returns the indexes of rows matching query.
func Filter(rows []*Row, query string) []int {
	var out []int
	for i, r := range rows {
		if Matches(r, query) {
			out = append(out, i)
		}
	}
	return out
}
