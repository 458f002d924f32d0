package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/confsched/internal/ui"
)

// Style names a palette entry. Cells store a Style rather than a
// lipgloss.Style so rows can be grouped into runs by comparison.
type Style uint8

const (
	StyleNormal Style = iota
	StyleSubtle
	StyleTitle
	StyleBorder
	StyleBorderSelected
	StyleBorderActive
	StyleHighlight
	StyleLink
	StyleTab
	StyleTabActive
	StyleHelp
	StyleError
	StyleWarning
	StyleCursor
	styleCount
)

var palette = [styleCount]lipgloss.Style{
	StyleNormal:         lipgloss.NewStyle().Foreground(ui.TextColor),
	StyleSubtle:         lipgloss.NewStyle().Foreground(ui.MutedColor),
	StyleTitle:          lipgloss.NewStyle().Foreground(ui.PrimaryColor).Bold(true),
	StyleBorder:         lipgloss.NewStyle().Foreground(ui.MutedColor),
	StyleBorderSelected: lipgloss.NewStyle().Foreground(ui.PrimaryColor),
	StyleBorderActive:   lipgloss.NewStyle().Foreground(ui.SuccessColor).Bold(true),
	StyleHighlight:      lipgloss.NewStyle().Foreground(ui.SuccessColor).Bold(true),
	StyleLink:           lipgloss.NewStyle().Foreground(ui.SuccessColor).Underline(true),
	StyleTab:            lipgloss.NewStyle().Foreground(ui.MutedColor),
	StyleTabActive:      lipgloss.NewStyle().Foreground(ui.TextColor).Background(ui.PrimaryColor).Bold(true),
	StyleHelp:           lipgloss.NewStyle().Foreground(ui.MutedColor),
	StyleError:          lipgloss.NewStyle().Foreground(ui.ErrorColor).Bold(true),
	StyleWarning:        lipgloss.NewStyle().Foreground(ui.WarningColor),
	StyleCursor:         lipgloss.NewStyle().Reverse(true),
}

// Lipgloss returns the lipgloss style behind s.
func (s Style) Lipgloss() lipgloss.Style {
	if s >= styleCount {
		return palette[StyleNormal]
	}
	return palette[s]
}

// Border is the frame drawn by Surface.Box.
var Border = lipgloss.RoundedBorder()
