package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TrimRunes trims surrounding space and keeps at most maxRunes characters.
// A cut never splits a multi-byte character. maxRunes <= 0 disables the cap.
func TrimRunes(input string, maxRunes int) string {
	s := strings.TrimSpace(input)
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
		n++
	}
	return s
}
