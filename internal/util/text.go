package util

import "strings"

// NormalizeHeader canonicalizes a column label for alias matching: trimmed
// and lower-cased, interior whitespace collapsed to single spaces.
func NormalizeHeader(input string) string {
	return strings.ToLower(strings.Join(strings.Fields(input), " "))
}

// TrimCell trims surrounding whitespace from a text cell.
func TrimCell(input string) string {
	return strings.TrimSpace(input)
}
