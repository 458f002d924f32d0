package form

import (
	"strings"

	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/tui/field"
)

const (
	textWidth = 50
	timeWidth = 25
	maxText   = 200
)

var autostartPermissionOptions = []string{"Deny", "Allow"}

// ConferenceForm edits every attribute of a conference.
type ConferenceForm struct {
	*Form
	title      *field.String
	start      *field.Time
	end        *field.Time
	link       *field.String
	password   *field.String
	autostart  *field.Carousel
	recurrence *field.Carousel
}

// NewConferenceForm returns a form filled with c.
func NewConferenceForm(c model.Conference) *ConferenceForm {
	permission := autostartPermissionOptions[0]
	if c.AutostartPermission {
		permission = autostartPermissionOptions[1]
	}
	recurrences := make([]string, len(model.Recurrences))
	for i, r := range model.Recurrences {
		recurrences[i] = r.String()
	}

	f := &ConferenceForm{
		title:      field.NewString("Title", maxText, c.Title),
		start:      field.NewTime("Start Time", c.StartTime),
		end:        field.NewTime("End Time", c.EndTime),
		link:       field.NewString("Link", maxText, c.Link),
		password:   field.NewString("Password", maxText, c.Password),
		autostart:  field.NewCarousel("Autostart", autostartPermissionOptions, permission),
		recurrence: field.NewCarousel("Recurrence", recurrences, c.Recurrence.String()),
	}
	f.Form = New([][]Cell{
		{{Field: f.title, Width: textWidth}},
		{{Field: f.start, Width: timeWidth}, {Field: f.end, Width: timeWidth}},
		{{Field: f.link, Width: textWidth}},
		{{Field: f.password, Width: textWidth}},
		{{Field: f.autostart, Width: textWidth}},
		{{Field: f.recurrence, Width: textWidth}},
	})
	return f
}

// Conference builds a conference from the input. The title must not be blank
// and the call must not end before it starts.
func (f *ConferenceForm) Conference() (model.Conference, error) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return model.Conference{}, model.NewValidationError("title", f.title.Value(), "title must not be empty")
	}
	start, err := f.start.Time()
	if err != nil {
		return model.Conference{}, err
	}
	end, err := f.end.Time()
	if err != nil {
		return model.Conference{}, err
	}
	if end.Before(start) {
		return model.Conference{}, model.NewValidationError("end_time", end.String(), "end time is before start time "+start.String())
	}
	recurrence, err := model.ParseRecurrence(f.recurrence.Value())
	if err != nil {
		return model.Conference{}, err
	}

	return model.Conference{
		Title:               title,
		Link:                strings.TrimSpace(f.link.Value()),
		StartTime:           start,
		EndTime:             end,
		Password:            f.password.Value(),
		AutostartPermission: f.autostart.Value() == autostartPermissionOptions[1],
		Recurrence:          recurrence,
	}, nil
}
