package tui

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestRect_Rows(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 10, Height: 10}

	got := r.Rows(3, 0, 1)
	want := []Rect{
		{X: 1, Y: 2, Width: 10, Height: 3},
		{X: 1, Y: 5, Width: 10, Height: 6},
		{X: 1, Y: 11, Width: 10, Height: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %+v, want %+v", got, want)
	}

	tight := Rect{Width: 4, Height: 4}.Rows(3, 3)
	if tight[1].Height != 1 {
		t.Errorf("overflowing row should be truncated, got height %d", tight[1].Height)
	}
}

func TestRect_Columns(t *testing.T) {
	got := Rect{Width: 9, Height: 1}.Columns(0, 0)
	if got[0].Width != 5 || got[1].Width != 4 || got[1].X != 5 {
		t.Errorf("Columns() = %+v", got)
	}
}

func TestSurface_PrintClips(t *testing.T) {
	s := NewSurface(6, 2)
	next := s.Print(Rect{X: 1, Y: 0, Width: 4, Height: 1}, 0, 0, "abcdef", StyleNormal)

	if next != 4 {
		t.Errorf("Print() = %d, want 4", next)
	}
	if got := s.Text(0); got != " abcd " {
		t.Errorf("row 0 = %q", got)
	}
	s.Print(Rect{Width: 6, Height: 1}, 0, 1, "ignored", StyleNormal)
	if got := s.Text(1); got != "      " {
		t.Errorf("row outside area should be untouched, got %q", got)
	}
}

func TestSurface_WideRunes(t *testing.T) {
	s := NewSurface(4, 1)
	s.Print(s.Bounds(), 0, 0, "日本語", StyleNormal)

	if got := s.Text(0); got != "日本" {
		t.Errorf("row = %q, want two wide runes", got)
	}
}

func TestSurface_OverwriteWideRune(t *testing.T) {
	tests := []struct {
		name  string
		col   int
		write string
		want  string
	}{
		{"left half", 0, "a", "a x   "},
		{"right half", 1, "b", " bx   "},
		{"wide over wide", 1, "本", " 本   "},
		{"wide on top", 0, "語", "語x   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(6, 1)
			s.Print(s.Bounds(), 0, 0, "日x", StyleNormal)
			s.Print(s.Bounds(), tt.col, 0, tt.write, StyleNormal)

			if got := s.Text(0); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
			if got := runewidth.StringWidth(s.Text(0)); got != 6 {
				t.Errorf("row width = %d, want 6", got)
			}
		})
	}
}

func TestSurface_Box(t *testing.T) {
	s := NewSurface(8, 3)
	inner := s.Box(s.Bounds(), "Hi", StyleBorder)

	if inner != (Rect{X: 1, Y: 1, Width: 6, Height: 1}) {
		t.Errorf("inner = %+v", inner)
	}
	if got := s.Text(0); got != "╭ Hi ──╮" {
		t.Errorf("top = %q", got)
	}
	if got := s.Text(2); got != "╰──────╯" {
		t.Errorf("bottom = %q", got)
	}
}

func TestSurface_Render(t *testing.T) {
	s := NewSurface(3, 2)
	s.Print(s.Bounds(), 0, 0, "abc", StyleNormal)
	s.SetStyle(1, 0, StyleCursor)

	if s.Cell(1, 0).Style != StyleCursor || s.Cell(1, 0).Rune != 'b' {
		t.Errorf("SetStyle should keep the rune, got %+v", s.Cell(1, 0))
	}
	if out := s.Render(); out == "" {
		t.Error("Render() returned nothing")
	}
}
