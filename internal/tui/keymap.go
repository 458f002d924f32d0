package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/config"
)

// sequence chords are joined with the unit separator, which no key name contains.
const chordSep = "\x1f"

// Binding is one entry of a mode's key table.
type Binding struct {
	// Sequence holds the chords in the form tea.KeyMsg.String() reports,
	// e.g. ["ctrl+c"] or ["g", "g"].
	Sequence []string
	Action   Action
	help     key.Binding
}

// Key returns the bubbles binding used for matching and help text.
func (b Binding) Key() key.Binding {
	return b.help
}

// KeyMap maps each mode to its bindings.
type KeyMap struct {
	modes map[Mode]map[string]Binding
}

// NewKeyMap parses the bindings of a config file.
func NewKeyMap(bindings config.Keybindings) (*KeyMap, error) {
	km := &KeyMap{modes: make(map[Mode]map[string]Binding)}
	seen := make(map[Mode]string, len(bindings))
	for modeName, table := range bindings {
		mode, err := ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[mode]; ok {
			return nil, &ParseError{What: "mode", Input: modeName, Reason: "duplicates " + prev}
		}
		seen[mode] = modeName
		for seqText, actionText := range table {
			seq, err := ParseKeySequence(seqText)
			if err != nil {
				return nil, err
			}
			action, err := ParseAction(actionText)
			if err != nil {
				return nil, err
			}
			km.Bind(mode, seq, action)
		}
	}
	return km, nil
}

// Bind adds or replaces the binding for seq in mode.
func (k *KeyMap) Bind(mode Mode, seq []string, action Action) {
	if k.modes[mode] == nil {
		k.modes[mode] = make(map[string]Binding)
	}

	b := Binding{Sequence: append([]string(nil), seq...), Action: action}
	if len(seq) == 1 {
		b.help = key.NewBinding(key.WithKeys(seq[0]), key.WithHelp(keyLabel(seq[0]), describe(action)))
	} else {
		labels := make([]string, len(seq))
		for i, s := range seq {
			labels[i] = keyLabel(s)
		}
		// Multi-chord bindings are matched by sequence, never by key.Matches.
		b.help = key.NewBinding(key.WithKeys(strings.Join(seq, chordSep)), key.WithHelp(strings.Join(labels, " "), describe(action)))
	}
	k.modes[mode][strings.Join(seq, chordSep)] = b
}

// MatchKey returns the action bound to a single key press in mode.
func (k *KeyMap) MatchKey(mode Mode, msg tea.KeyMsg) (Action, bool) {
	for _, b := range k.modes[mode] {
		if len(b.Sequence) == 1 && key.Matches(msg, b.help) {
			return b.Action, true
		}
	}
	return None, false
}

// MatchSequence returns the action bound to the full chord sequence in mode.
func (k *KeyMap) MatchSequence(mode Mode, seq []string) (Action, bool) {
	b, ok := k.modes[mode][strings.Join(seq, chordSep)]
	return b.Action, ok
}

// Bindings returns the bindings of mode ordered by their help label.
func (k *KeyMap) Bindings(mode Mode) []Binding {
	out := make([]Binding, 0, len(k.modes[mode]))
	for _, b := range k.modes[mode] {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].help.Help().Key < out[j].help.Help().Key
	})
	return out
}

// modeHelp implements help.KeyMap for one mode.
type modeHelp struct {
	bindings []Binding
}

func (h modeHelp) ShortHelp() []key.Binding {
	keys := make([]key.Binding, len(h.bindings))
	for i, b := range h.bindings {
		keys[i] = b.help
	}
	return keys
}

func (h modeHelp) FullHelp() [][]key.Binding {
	var groups [][]key.Binding
	keys := h.ShortHelp()
	for len(keys) > 0 {
		n := min(3, len(keys))
		groups = append(groups, keys[:n])
		keys = keys[n:]
	}
	return groups
}

// Help returns a help.KeyMap listing the bindings of mode.
func (k *KeyMap) Help(mode Mode) help.KeyMap {
	return modeHelp{bindings: k.Bindings(mode)}
}

// ParseKeySequence parses "<ctrl+c>" or "<g><g>" into chords. "<space>" is
// accepted for the space bar.
func ParseKeySequence(s string) ([]string, error) {
	var seq []string
	rest := strings.TrimSpace(s)
	for rest != "" {
		if rest[0] != '<' {
			return nil, &ParseError{What: "key sequence", Input: s, Reason: "chords must be written <key>"}
		}
		// Search from index 2 so "<>>" names the '>' key.
		end := strings.IndexByte(rest[min(2, len(rest)):], '>')
		if end < 0 {
			return nil, &ParseError{What: "key sequence", Input: s, Reason: "missing '>'"}
		}
		end += min(2, len(rest))
		chord := rest[1:end]
		if chord == "" {
			return nil, &ParseError{What: "key sequence", Input: s, Reason: "empty chord"}
		}
		if chord == "space" {
			chord = " "
		}
		seq = append(seq, chord)
		rest = rest[end+1:]
	}
	if len(seq) == 0 {
		return nil, &ParseError{What: "key sequence", Input: s, Reason: "no keys"}
	}
	return seq, nil
}

// FormatKeySequence is the inverse of ParseKeySequence.
func FormatKeySequence(seq []string) string {
	var b strings.Builder
	for _, chord := range seq {
		if chord == " " {
			chord = "space"
		}
		b.WriteString("<" + chord + ">")
	}
	return b.String()
}

func keyLabel(chord string) string {
	if chord == " " {
		return "space"
	}
	return chord
}

func describe(a Action) string {
	switch a.Kind {
	case KindChangeMode:
		return strings.ToLower(a.Mode.String())
	case KindClearScreen:
		return "redraw"
	}
	return strings.ToLower(a.String())
}
