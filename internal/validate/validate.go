package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	PhonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
	DatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ErrField is a failed rule on one field. Msg is operator-facing text.
type ErrField struct {
	Field string
	Msg   string
}

func (e *ErrField) Error() string { return e.Field + ": " + e.Msg }

// Helpers
func Required(field, value, msg string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: msg}
	}
	return nil
}

func Match(field, value string, re *regexp.Regexp, msg string) *ErrField {
	if !re.MatchString(value) {
		return &ErrField{Field: field, Msg: msg}
	}
	return nil
}

// IntRange parses raw and checks min <= v <= max. A parse failure reports
// parseMsg, a range failure reports rangeMsg.
func IntRange(field, raw string, min, max int, parseMsg, rangeMsg string) (int, *ErrField) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ErrField{Field: field, Msg: parseMsg}
	}
	if v < min || v > max {
		return v, &ErrField{Field: field, Msg: rangeMsg}
	}
	return v, nil
}
