package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	maxHour   = 23
	maxMinute = 59
)

// Time is a wall-clock time of day with minute precision.
// The zero value is midnight.
type Time struct {
	hour   uint8
	minute uint8
}

// NewTime returns the time hour:minute, validating both components.
func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > maxHour {
		return Time{}, NewValidationError("time", fmt.Sprintf("%d:%d", hour, minute),
			"invalid hour: must be between 0 and 23")
	}
	if minute < 0 || minute > maxMinute {
		return Time{}, NewValidationError("time", fmt.Sprintf("%d:%d", hour, minute),
			"invalid minute: must be between 0 and 59")
	}
	return Time{hour: uint8(hour), minute: uint8(minute)}, nil
}

// MustTime is like NewTime but panics on invalid input. Intended for
// constants and tests.
func MustTime(hour, minute int) Time {
	t, err := NewTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTime parses a string of the exact form HH:MM.
func ParseTime(s string) (Time, error) {
	if len(s) != 5 || s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return Time{}, NewValidationError("time", s, "invalid time format: must be HH:MM")
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	t, err := NewTime(hour, minute)
	if err != nil {
		// Keep the caller's original text in the error
		err.(*Error).Value = s
		return Time{}, err
	}
	return t, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Hour returns the hour component (0-23)
func (t Time) Hour() int { return int(t.hour) }

// Minute returns the minute component (0-59)
func (t Time) Minute() int { return int(t.minute) }

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return int(t.hour)*60 + int(t.minute)
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to
// or after u.
func (t Time) Compare(u Time) int {
	switch a, b := t.Minutes(), u.Minutes(); {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is earlier in the day than u.
func (t Time) Before(u Time) bool {
	return t.Compare(u) < 0
}

// String formats the time as zero-padded HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// MarshalYAML encodes the time as its HH:MM string.
func (t Time) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes an HH:MM string.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
