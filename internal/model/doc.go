// Package model defines the schedule domain: times of day, conferences,
// the seven-day Schedule entity and user Settings.
//
// # Schedule invariant
//
// A Schedule stores one ordered slice of conferences per weekday. After
// every AddConference or UpdateConference the affected day is sorted by
// start time again, so callers must not assume that an index survives a
// mutation that changes a start time:
//
//	s := model.NewSchedule("work")
//	s.AddConference(1, model.Conference{Title: "Standup", StartTime: model.MustTime(9, 0)})
//	s.AddConference(1, model.Conference{Title: "Retro", StartTime: model.MustTime(8, 0)})
//	s.Day(1) // Retro, Standup
//
// # Errors
//
// Invalid input (ParseTime, ParseRecurrence) returns a *Error of type
// ErrTypeValidation, and lookups of a missing (day, index) return
// ErrTypeNotFound. Both match their sentinels with errors.Is. A day outside
// [1,7] is a programming error and panics.
package model
