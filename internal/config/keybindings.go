package config

import (
	"sort"
	"strings"
)

// Keybindings maps mode name -> key sequence -> action text. The strings are
// parsed by the tui package; this package only stores and merges them.
type Keybindings map[string]map[string]string

// DefaultKeybindings returns the bindings shipped with the application.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"Schedule": {
			"<q>":      "Quit",
			"<ctrl+c>": "Quit",
			"<ctrl+z>": "Suspend",
			"<tab>":    "ChangeMode(Settings)",
			"<?>":      "Help",
		},
		"Settings": {
			"<q>":      "Quit",
			"<ctrl+c>": "Quit",
			"<ctrl+z>": "Suspend",
			"<tab>":    "ChangeMode(Schedule)",
			"<?>":      "Help",
		},
		// Plain keys are text while a form is open.
		"Edit": {
			"<ctrl+c>": "Quit",
			"<ctrl+z>": "Suspend",
		},
	}
}

// Merge copies every binding in other over k. An empty action removes the
// binding. Mode names match case-insensitively, so "schedule" in a user file
// updates the default "Schedule" table.
func (k Keybindings) Merge(other Keybindings) {
	modes := make([]string, 0, len(other))
	for mode := range other {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	for _, name := range modes {
		mode := k.modeKey(name)
		if k[mode] == nil {
			k[mode] = make(map[string]string, len(other[name]))
		}
		for seq, action := range other[name] {
			if action == "" {
				delete(k[mode], seq)
				continue
			}
			k[mode][seq] = action
		}
	}
}

// modeKey returns the existing key of k that equals name ignoring case, or
// name itself.
func (k Keybindings) modeKey(name string) string {
	if _, ok := k[name]; ok {
		return name
	}
	for existing := range k {
		if strings.EqualFold(strings.TrimSpace(existing), strings.TrimSpace(name)) {
			return existing
		}
	}
	return name
}
