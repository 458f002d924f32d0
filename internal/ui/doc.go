// Package ui renders styled, non-interactive output for the confsched CLI.
//
// The interactive schedule editor lives in the tui packages. This package
// serves commands such as "confsched show" that print once and exit: a
// header naming the schedule, one bordered box per day and, when something
// goes wrong, an error box with troubleshooting tips.
//
// Output is produced with Lipgloss and sized to the terminal:
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Weekly schedule", "confsched show", []ui.Param{{Key: "Schedule", Value: "work"}})
//	p.PrintWeek(schedule, time.Now())
//
// Colors are dropped automatically when stdout is not a terminal, so the
// output can be piped or captured in tests.
package ui
