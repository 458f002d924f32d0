package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what an Action asks for.
type Kind uint8

const (
	KindNone Kind = iota
	KindTick
	KindRender
	KindResize
	KindSuspend
	KindResume
	KindQuit
	KindClearScreen
	KindError
	KindHelp
	KindChangeMode
)

var kindNames = map[Kind]string{
	KindTick:        "Tick",
	KindRender:      "Render",
	KindResize:      "Resize",
	KindSuspend:     "Suspend",
	KindResume:      "Resume",
	KindQuit:        "Quit",
	KindClearScreen: "ClearScreen",
	KindError:       "Error",
	KindHelp:        "Help",
	KindChangeMode:  "ChangeMode",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "None"
}

// Action is a message flowing through the dispatch loop. Only the payload
// fields belonging to Kind are set, which keeps Action comparable with ==.
// The zero Action means "no action".
type Action struct {
	Kind    Kind
	Width   int    // Resize
	Height  int    // Resize
	Message string // Error
	Mode    Mode   // ChangeMode
}

// Payload-free actions.
var (
	None        = Action{}
	Tick        = Action{Kind: KindTick}
	Render      = Action{Kind: KindRender}
	Suspend     = Action{Kind: KindSuspend}
	Resume      = Action{Kind: KindResume}
	Quit        = Action{Kind: KindQuit}
	ClearScreen = Action{Kind: KindClearScreen}
	Help        = Action{Kind: KindHelp}
)

// Resize reports a new terminal size.
func Resize(width, height int) Action {
	return Action{Kind: KindResize, Width: width, Height: height}
}

// Error carries a human-readable failure.
func Error(message string) Action {
	return Action{Kind: KindError, Message: message}
}

// Errorf formats an Error action.
func Errorf(format string, args ...any) Action {
	return Error(fmt.Sprintf(format, args...))
}

// ChangeMode switches the current mode.
func ChangeMode(mode Mode) Action {
	return Action{Kind: KindChangeMode, Mode: mode}
}

// IsNone reports whether a is the "no action" value.
func (a Action) IsNone() bool {
	return a.Kind == KindNone
}

// String returns the textual form used in the config file, e.g. "Quit",
// "Resize(80,24)" or "ChangeMode(Settings)".
func (a Action) String() string {
	switch a.Kind {
	case KindResize:
		return fmt.Sprintf("Resize(%d,%d)", a.Width, a.Height)
	case KindError:
		return "Error(" + a.Message + ")"
	case KindChangeMode:
		return "ChangeMode(" + a.Mode.String() + ")"
	}
	return a.Kind.String()
}

// ParseAction parses the textual form produced by String.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)

	name, arg, hasArg := s, "", false
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return None, &ParseError{What: "action", Input: s, Reason: "missing closing parenthesis"}
		}
		name, arg, hasArg = s[:open], s[open+1:len(s)-1], true
	}

	var kind Kind
	for k, n := range kindNames {
		if n == name {
			kind = k
			break
		}
	}
	if kind == KindNone {
		return None, &ParseError{What: "action", Input: s, Reason: "unknown action"}
	}

	switch kind {
	case KindResize:
		if !hasArg {
			return None, &ParseError{What: "action", Input: s, Reason: "Resize needs (width,height)"}
		}
		w, h, ok := strings.Cut(arg, ",")
		width, errW := strconv.Atoi(strings.TrimSpace(w))
		height, errH := strconv.Atoi(strings.TrimSpace(h))
		if !ok || errW != nil || errH != nil || width < 0 || height < 0 {
			return None, &ParseError{What: "action", Input: s, Reason: "Resize needs two non-negative integers"}
		}
		return Resize(width, height), nil
	case KindError:
		if !hasArg {
			return None, &ParseError{What: "action", Input: s, Reason: "Error needs (message)"}
		}
		return Error(arg), nil
	case KindChangeMode:
		if !hasArg {
			return None, &ParseError{What: "action", Input: s, Reason: "ChangeMode needs (mode)"}
		}
		mode, err := ParseMode(arg)
		if err != nil {
			return None, &ParseError{What: "action", Input: s, Reason: err.Error()}
		}
		return ChangeMode(mode), nil
	}

	if hasArg {
		return None, &ParseError{What: "action", Input: s, Reason: name + " takes no arguments"}
	}
	return Action{Kind: kind}, nil
}

// Mode selects the key-binding table and the visible page.
type Mode uint8

const (
	ModeSchedule Mode = iota
	ModeSettings
	ModeEdit
)

// Modes lists every mode in declaration order.
var Modes = []Mode{ModeSchedule, ModeSettings, ModeEdit}

func (m Mode) String() string {
	switch m {
	case ModeSchedule:
		return "Schedule"
	case ModeSettings:
		return "Settings"
	case ModeEdit:
		return "Edit"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return ModeSchedule, &ParseError{What: "mode", Input: s, Reason: "want Schedule, Settings or Edit"}
}

// ParseError reports malformed configuration text.
type ParseError struct {
	What   string // "action", "mode" or "key sequence"
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.What, e.Input, e.Reason)
}
