package logging

import (
	"regexp"
	"strings"
)

// RedactedText replaces data that must not reach the logs.
const RedactedText = "[REDACTED]"

var emailPattern = regexp.MustCompile(`^([^@\s])[^@\s]*(@[^@\s]+)$`)

// RedactEmail keeps the first character of the local part and the domain so
// log lines stay useful for support without exposing the address.
//
//	RedactEmail("ann@x.com") == "a***@x.com"
func RedactEmail(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return ""
	}
	if !emailPattern.MatchString(trimmed) {
		return RedactedText
	}
	return emailPattern.ReplaceAllString(trimmed, "${1}***${2}")
}
