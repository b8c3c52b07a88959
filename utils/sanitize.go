package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML from user-submitted text before it is stored,
// keeping the markup the UGC policy allows.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
