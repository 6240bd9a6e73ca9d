package common

import "strings"

// SingleLine collapses every run of whitespace in s, line breaks included,
// into one space, so the result occupies exactly one line of a log file.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
