package habr

import (
	"strings"
	"unicode"
)

// TrimLeft removes all leading occurrences of c and returns how many there were
func TrimLeft(line string, c byte) (int, string) {
	for i := 0; i < len(line); i++ {
		if line[i] != c {
			return i, line[i:]
		}
	}
	return len(line), ""
}

func trimLeftSpace(line string) string {
	return strings.TrimLeftFunc(line, unicode.IsSpace)
}

// isDigits returns true if s is not empty and made only of ASCII digits
func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isBlank returns true if s is not empty and made only of whitespace
func isBlank(s string) bool {
	return len(s) > 0 && len(strings.TrimSpace(s)) == 0
}

// slice returns s[start:end] where negative indexes count from the end of
// the string and out of range indexes are clamped, instead of panicking.
// An empty string is returned when start is not before end.
func slice(s string, start, end int) string {
	n := len(s)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if start >= end {
		return ""
	}
	return s[start:end]
}
