package datauri

import "strings"

const logSnippetLimit = 48

// Snippet shortens value for log fields so payloads are never logged in full.
func Snippet(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	runes := []rune(value)
	if len(runes) <= logSnippetLimit {
		return value
	}

	return string(runes[:logSnippetLimit]) + "..."
}
