package form

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/tui"
	"github.com/muurk/confsched/internal/tui/field"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newGrid() (*Form, [][]*field.String) {
	fields := [][]*field.String{
		{field.NewString("a", 10, "a"), field.NewString("b", 10, "b")},
		{field.NewString("c", 10, "c")},
	}
	rows := make([][]Cell, len(fields))
	for i, row := range fields {
		for _, f := range row {
			rows[i] = append(rows[i], Cell{Field: f, Width: 12})
		}
	}
	return New(rows), fields
}

func TestForm_InitialState(t *testing.T) {
	f, fields := newGrid()

	if f.Editing() {
		t.Error("new form should be browsing")
	}
	if row, col := f.Selected(); row != 0 || col != 0 {
		t.Errorf("Selected() = (%d, %d), want (0, 0)", row, col)
	}
	if fields[0][0].Style() != field.StyleSelected {
		t.Errorf("field (0,0) style = %v, want selected", fields[0][0].Style())
	}
	if fields[0][1].Style() != field.StyleDefault {
		t.Errorf("field (0,1) style = %v, want default", fields[0][1].Style())
	}
}

func TestForm_BrowseMovesSelection(t *testing.T) {
	f, fields := newGrid()

	f.HandleKey(key(tea.KeyRight))
	if fields[0][0].Style() != field.StyleDefault || fields[0][1].Style() != field.StyleSelected {
		t.Fatal("Right should move the selected style to (0,1)")
	}

	f.HandleKey(key(tea.KeyDown))
	if row, col := f.Selected(); row != 1 || col != 0 {
		t.Fatalf("Selected() = (%d, %d), want (1, 0)", row, col)
	}
	if fields[1][0].Style() != field.StyleSelected || fields[0][1].Style() != field.StyleDefault {
		t.Error("Down should restyle old and new selection")
	}

	f.HandleKey(runes("x"))
	if fields[1][0].Value() != "c" {
		t.Error("keys must not reach fields while browsing")
	}
}

func TestForm_EditCycle(t *testing.T) {
	f, fields := newGrid()

	f.HandleKey(key(tea.KeyEnter))
	if !f.Editing() {
		t.Fatal("Enter should start editing")
	}
	if fields[0][0].Style() != field.StyleActive {
		t.Errorf("edited field style = %v, want active", fields[0][0].Style())
	}

	f.HandleKey(runes("z"))
	f.HandleKey(key(tea.KeyRight))
	if fields[0][0].Value() != "az" {
		t.Errorf("Value() = %q, want az", fields[0][0].Value())
	}
	if row, col := f.Selected(); row != 0 || col != 0 {
		t.Error("arrows while editing belong to the field")
	}

	f.HandleKey(key(tea.KeyEsc))
	if f.Editing() {
		t.Fatal("Esc should stop editing")
	}
	if fields[0][0].Style() != field.StyleSelected {
		t.Errorf("style after Esc = %v, want selected", fields[0][0].Style())
	}
	fields[0][0].Update(tui.Tick)
	if fields[0][0].CursorShown() {
		t.Error("cursor should be hidden after Esc")
	}

	if got := f.Values(); !reflect.DeepEqual(got, [][]string{{"az", "b"}, {"c"}}) {
		t.Errorf("Values() = %v", got)
	}
}

func TestForm_UpdateReachesEveryField(t *testing.T) {
	f, fields := newGrid()
	for _, row := range fields {
		for _, fl := range row {
			fl.SetCursorVisible(true)
		}
	}

	for range 3 {
		f.Update(tui.Tick)
	}
	for _, row := range fields {
		for _, fl := range row {
			if fl.CursorShown() {
				t.Errorf("field %s did not receive ticks", fl.Title())
			}
		}
	}
}

func TestForm_Draw(t *testing.T) {
	f, _ := newGrid()
	s := tui.NewSurface(30, f.Height())

	if err := f.Draw(s, s.Bounds()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if got := []rune(s.Text(1)); got[1] != 'a' || got[13] != 'b' {
		t.Errorf("row 1 = %q", string(got))
	}
	if got := []rune(s.Text(4)); got[1] != 'c' {
		t.Errorf("row 4 = %q", string(got))
	}
}

func TestConferenceForm(t *testing.T) {
	orig := model.Conference{
		Title:               "Standup",
		Link:                "https://meet.example.com/standup",
		StartTime:           model.MustTime(9, 0),
		EndTime:             model.MustTime(9, 15),
		AutostartPermission: true,
		Recurrence:          model.RecurOdd,
	}
	f := NewConferenceForm(orig)

	got, err := f.Conference()
	if err != nil {
		t.Fatalf("Conference() error = %v", err)
	}
	if got != orig {
		t.Errorf("Conference() = %+v, want %+v", got, orig)
	}

	want := [][]string{
		{"Standup"},
		{"09:00", "09:15"},
		{"https://meet.example.com/standup"},
		{""},
		{"Allow"},
		{"Odd"},
	}
	if !reflect.DeepEqual(f.Values(), want) {
		t.Errorf("Values() = %v, want %v", f.Values(), want)
	}
}

func TestConferenceForm_EditPassword(t *testing.T) {
	f := NewConferenceForm(model.Conference{Title: "Retro", StartTime: model.MustTime(15, 0), EndTime: model.MustTime(16, 0)})

	for range 3 {
		f.HandleKey(key(tea.KeyDown))
	}
	f.HandleKey(key(tea.KeyEnter))
	for _, r := range "s3cret" {
		f.HandleKey(runes(string(r)))
	}
	f.HandleKey(key(tea.KeyEsc))

	got, err := f.Conference()
	if err != nil {
		t.Fatalf("Conference() error = %v", err)
	}
	if got.Password != "s3cret" || !got.HasPassword() {
		t.Errorf("Password = %q", got.Password)
	}
}

func TestConferenceForm_Validation(t *testing.T) {
	tests := []struct {
		name string
		conf model.Conference
	}{
		{"blank title", model.Conference{Title: "  ", StartTime: model.MustTime(9, 0), EndTime: model.MustTime(10, 0)}},
		{"ends before start", model.Conference{Title: "x", StartTime: model.MustTime(11, 0), EndTime: model.MustTime(10, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConferenceForm(tt.conf).Conference()
			if !model.IsValidationError(err) {
				t.Errorf("Conference() error = %v, want validation error", err)
			}
		})
	}
}

func TestSettingsForm(t *testing.T) {
	f := NewSettingsForm(model.Settings{Autostart: false, EarlyJoinMinutes: 5})

	f.HandleKey(key(tea.KeyEnter))
	f.HandleKey(key(tea.KeyUp))
	f.HandleKey(key(tea.KeyEsc))

	f.HandleKey(key(tea.KeyDown))
	f.HandleKey(key(tea.KeyEnter))
	f.HandleKey(key(tea.KeyBackspace))
	for _, r := range "120" {
		f.HandleKey(runes(string(r)))
	}
	f.HandleKey(runes("9"))
	f.HandleKey(key(tea.KeyEsc))

	got := f.Settings()
	if !got.Autostart || got.EarlyJoinMinutes != 120 {
		t.Errorf("Settings() = %+v, want autostart on and 120 minutes", got)
	}
}
