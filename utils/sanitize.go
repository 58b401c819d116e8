package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Reflections are plain text; strip all markup rather than allowing a safe subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize cleans user supplied free text to prevent stored XSS.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
