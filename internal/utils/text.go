package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanText trims surrounding whitespace and drops NUL bytes and invalid
// UTF-8 sequences from submitted form text.
func CleanText(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "\x00") && utf8.ValidString(input) {
		return input
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return strings.TrimSpace(cleaned)
}
