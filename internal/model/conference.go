package model

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Recurrence selects which weeks a conference takes place in.
type Recurrence int

const (
	// Every week
	RecurEvery Recurrence = iota
	// Weeks with an even ISO-8601 week number
	RecurEven
	// Weeks with an odd ISO-8601 week number
	RecurOdd
)

// Recurrences lists every recurrence in display order.
var Recurrences = []Recurrence{RecurEvery, RecurEven, RecurOdd}

func (r Recurrence) String() string {
	switch r {
	case RecurEven:
		return "Even"
	case RecurOdd:
		return "Odd"
	default:
		return "Every"
	}
}

// ParseRecurrence parses the textual form produced by String (case-insensitive).
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "every":
		return RecurEvery, nil
	case "even":
		return RecurEven, nil
	case "odd":
		return RecurOdd, nil
	}
	return RecurEvery, NewValidationError("recurrence", s, "must be one of Every, Even, Odd")
}

// Matches reports whether a conference with this recurrence happens in the
// week containing t.
func (r Recurrence) Matches(t time.Time) bool {
	_, week := t.ISOWeek()
	switch r {
	case RecurEven:
		return week%2 == 0
	case RecurOdd:
		return week%2 == 1
	default:
		return true
	}
}

// MarshalYAML encodes the recurrence by name.
func (r Recurrence) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML decodes a recurrence name.
func (r *Recurrence) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRecurrence(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Conference is a single recurring call in the weekly schedule.
// It has no identity of its own; a Schedule addresses it by (day, index).
type Conference struct {
	Title               string     `yaml:"title"`
	Link                string     `yaml:"link"`
	StartTime           Time       `yaml:"start_time"`
	EndTime             Time       `yaml:"end_time"`
	Password            string     `yaml:"password,omitempty"` // Empty means no password
	AutostartPermission bool       `yaml:"autostart_permission"`
	Recurrence          Recurrence `yaml:"recurrence"`
}

// HasPassword reports whether a password is set.
func (c Conference) HasPassword() bool {
	return c.Password != ""
}

// Settings holds the user's application preferences.
type Settings struct {
	Autostart        bool   `yaml:"autostart"`
	EarlyJoinMinutes uint16 `yaml:"early_join_minutes"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{}
}
