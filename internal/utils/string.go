package utils

import "strings"

// NormalizeNewlines collapses CRLF and bare CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Truncate shortens s to at most maxChars runes, marking the cut with "...".
func Truncate(s string, maxChars int) string {
	if maxChars <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars-3]) + "..."
}

// Snippet produces a bounded, newline-normalized preview of a message body.
func Snippet(body string, maxChars int) string {
	return Truncate(strings.TrimSpace(NormalizeNewlines(body)), maxChars)
}
