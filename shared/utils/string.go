package utils

import "strings"

// TruncateWithEllipsis keeps the first n runes of s and always appends "...".
func TruncateWithEllipsis(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

// PlusJoin replaces every space with '+', the form used in search query paths.
func PlusJoin(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}

// PercentSpaces replaces every space with %20.
func PercentSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
