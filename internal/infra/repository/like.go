package repository

import "strings"

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// escapeLike lowercases a search term and escapes LIKE wildcards so
// user input matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(strings.ToLower(term))
}
