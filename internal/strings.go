package internal

import (
	"regexp"
	"strings"
)

var colonSpaces = regexp.MustCompile(": +")

// TrimLines flattens an indented JSON literal so it can be compared with a
// compact response body.
func TrimLines(s string) string {
	trimmed := colonSpaces.ReplaceAllString(s, ":")
	trimmed = strings.ReplaceAll(trimmed, "\n", "")
	trimmed = strings.ReplaceAll(trimmed, "\t", "")
	return strings.TrimSpace(trimmed)
}

// IsBlank reports whether s holds nothing but whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
