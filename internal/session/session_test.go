package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/muurk/confsched/internal/model"
	"github.com/muurk/confsched/internal/store"
)

// memStore is an in-memory store with injectable failures.
type memStore struct {
	schedules   map[string]*model.Schedule
	settings    model.Settings
	loadErr     error
	saveErr     error
	saveCalls   int
	settingsSet bool
}

func newMemStore() *memStore {
	return &memStore{schedules: make(map[string]*model.Schedule)}
}

func (m *memStore) LoadSchedule(_ context.Context, name string) (*model.Schedule, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if s, ok := m.schedules[name]; ok {
		return s.Clone(), nil
	}
	return model.NewSchedule(name), nil
}

func (m *memStore) SaveSchedule(_ context.Context, s *model.Schedule) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.schedules[s.Name] = s.Clone()
	return nil
}

func (m *memStore) DeleteSchedule(_ context.Context, name string) error {
	delete(m.schedules, name)
	return nil
}

func (m *memStore) ListSchedules(context.Context) ([]string, error) { return nil, nil }

func (m *memStore) LoadSettings(context.Context) (model.Settings, error) { return m.settings, nil }

func (m *memStore) SaveSettings(_ context.Context, s model.Settings) error {
	m.settings = s
	m.settingsSet = true
	return nil
}

var (
	standup = model.Conference{Title: "Standup", StartTime: model.MustTime(9, 0), EndTime: model.MustTime(9, 15)}
	retro   = model.Conference{Title: "Retro", StartTime: model.MustTime(15, 0), EndTime: model.MustTime(16, 0)}
)

func TestSession_Mutations(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, "work", newMemStore(), newMemStore())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	steps := []struct {
		name    string
		m       Mutation
		wantErr bool
		titles  []string
	}{
		{"add retro", AddConference{Day: 1, Conference: retro}, false, []string{"Retro"}},
		{"add standup sorts", AddConference{Day: 1, Conference: standup}, false, []string{"Standup", "Retro"}},
		{"update resorts", UpdateConference{Day: 1, Index: 0, Conference: model.Conference{Title: "Late", StartTime: model.MustTime(17, 0)}}, false, []string{"Retro", "Late"}},
		{"update missing", UpdateConference{Day: 1, Index: 5, Conference: standup}, true, []string{"Retro", "Late"}},
		{"remove", RemoveConference{Day: 1, Index: 1}, false, []string{"Retro"}},
		{"remove missing", RemoveConference{Day: 1, Index: 3}, true, []string{"Retro"}},
		{"bad day", AddConference{Day: 8, Conference: standup}, true, []string{"Retro"}},
	}

	for _, step := range steps {
		err := s.Submit(step.m)
		if (err != nil) != step.wantErr {
			t.Fatalf("%s: Submit() error = %v, wantErr %v", step.name, err, step.wantErr)
		}
		var got []string
		for _, c := range s.Day(1) {
			got = append(got, c.Title)
		}
		if !reflect.DeepEqual(got, step.titles) {
			t.Fatalf("%s: titles = %v, want %v", step.name, got, step.titles)
		}
	}

	if err := s.Submit(UpdateConference{Day: 2, Index: 0, Conference: standup}); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Submit() error = %v, want ErrNotFound", err)
	}
}

func TestSession_ReadsAreCopies(t *testing.T) {
	s, _ := Open(context.Background(), "work", newMemStore(), newMemStore())
	if err := s.Submit(AddConference{Day: 3, Conference: standup}); err != nil {
		t.Fatal(err)
	}

	day := s.Day(3)
	day[0].Title = "changed"
	copied := s.Schedule()
	copied.AddConference(3, retro)

	if c, _ := s.Conference(3, 0); c.Title != "Standup" {
		t.Errorf("Day() copy leaked into the session: %q", c.Title)
	}
	if s.ConferenceCountByDay()[2] != 1 {
		t.Error("Schedule() copy leaked into the session")
	}
	if s.IndexOf(3, standup) != 0 {
		t.Error("IndexOf(standup) should be 0")
	}
}

func TestSession_CloseSavesWhenDirty(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	s, _ := Open(ctx, "work", st, st)

	s.Close(ctx)
	if st.saveCalls != 0 {
		t.Errorf("clean session saved %d times", st.saveCalls)
	}

	if err := s.Submit(AddConference{Day: 1, Conference: standup}); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(UpdateSettings{Settings: model.Settings{Autostart: true, EarlyJoinMinutes: 2}}); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Fatal("Dirty() should be true after Submit")
	}
	s.Close(ctx)

	if st.schedules["work"].Len() != 1 {
		t.Error("schedule not saved on Close")
	}
	if !st.settingsSet || !st.settings.Autostart {
		t.Error("settings not saved on Close")
	}
	if s.Dirty() {
		t.Error("Dirty() should be false after saving")
	}
}

func TestSession_CloseIgnoresSaveErrors(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.saveErr = errors.New("disk full")
	s, _ := Open(ctx, "work", st, st)
	if err := s.Submit(AddConference{Day: 1, Conference: standup}); err != nil {
		t.Fatal(err)
	}

	s.Close(ctx)
	if st.saveCalls != 1 {
		t.Errorf("saveCalls = %d, want 1", st.saveCalls)
	}
}

func TestSession_LoadFailureDisablesSaving(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.loadErr = errors.New("corrupt")

	s, err := Open(ctx, "work", st, st)
	if err == nil {
		t.Fatal("Open() should report the load failure")
	}
	if s == nil || !s.ReadOnly() {
		t.Fatal("session should be usable and read-only")
	}
	if err := s.Submit(AddConference{Day: 1, Conference: standup}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	s.Close(ctx)
	if st.saveCalls != 0 {
		t.Error("read-only session must not overwrite stored data")
	}
	if err := s.Save(ctx); err == nil {
		t.Error("Save() should fail when read-only")
	}
}

func TestSession_FileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st := store.NewFileStore(dir)
	s, err := Open(ctx, "work", st, st)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(AddConference{Day: 5, Conference: retro}); err != nil {
		t.Fatal(err)
	}
	s.Close(ctx)

	reopened, err := Open(ctx, "work", st, st)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.Day(5); len(got) != 1 || got[0] != retro {
		t.Errorf("Day(5) after reopen = %+v", got)
	}
}
