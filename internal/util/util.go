package util

import (
	"strings"
)

// IsAffirmative reports whether s is the delete confirmation token "SI".
func IsAffirmative(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "SI")
}

// KeepIfEmpty returns current when input is blank.
func KeepIfEmpty(input, current string) string {
	if strings.TrimSpace(input) == "" {
		return current
	}
	return input
}

// ParseID parses a non-negative decimal id made only of digits.
func ParseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		d := int(r - '0')
		if n > (maxInt-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

const maxInt = int(^uint(0) >> 1)
