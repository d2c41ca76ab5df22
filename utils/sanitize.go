package utils

import "github.com/microcosm-cc/bluemonday"

// Profile fields (display name, signature) are plain text rendered on the
// leaderboard and public profiles, so the strict policy strips all markup.
var sanitizer = bluemonday.StrictPolicy()

// SanitizeText strips any HTML from user-supplied plain-text fields.
func SanitizeText(input string) string {
	return sanitizer.Sanitize(input)
}
