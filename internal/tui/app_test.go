package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"agenda-cli/internal/book"
	"agenda-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testStore(t *testing.T) (*book.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appointments.json")
	st, err := book.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st, path
}

func seed(t *testing.T, st *book.Store, title string, hour, duration int) {
	t.Helper()
	a, err := model.New(title, time.Date(2024, 3, 15, hour, 0, 0, 0, time.UTC), duration)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if conflict := st.Add(a); conflict != nil {
		t.Fatalf("seed conflict: %v", conflict.Label())
	}
}

func fillForm(m *appModel, title string, hour, minute int, duration string) {
	m.form.titleInput.SetValue(title)
	m.form.setDate(2024, 3, 15)
	m.form.hourInput.SetValue(fmt2(hour))
	m.form.minuteInput.SetValue(fmt2(minute))
	m.form.durationInput.SetValue(duration)
}

func TestAddFormFlow_AddsAndSaves(t *testing.T) {
	st, path := testStore(t)
	m := newAppModel(st, path)

	mAny, _ := m.Update(key('a'))
	m = mAny.(appModel)
	if m.mode != modeForm {
		t.Fatalf("expected form mode after 'a', got %v", m.mode)
	}

	fillForm(&m, "Dentist", 9, 0, "30")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.mode != modeList {
		t.Fatalf("expected list mode after submit, got %v", m.mode)
	}
	if st.Len() != 1 {
		t.Fatalf("store size = %d, want 1", st.Len())
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("list rows = %d, want 1", len(m.list.Items()))
	}
	// The mutation is persisted immediately.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected saved file: %v", err)
	}
}

func TestAddFormFlow_ValidationStaysInForm(t *testing.T) {
	st, path := testStore(t)
	m := newAppModel(st, path)

	mAny, _ := m.Update(key('a'))
	m = mAny.(appModel)
	fillForm(&m, "   ", 9, 0, "30")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.mode != modeForm {
		t.Fatalf("validation failure must keep the form open, got mode %v", m.mode)
	}
	if !m.statusErr {
		t.Fatal("expected an error status")
	}
	if st.Len() != 0 {
		t.Fatalf("invalid submit mutated the store: %d", st.Len())
	}
}

func TestOverlapConfirmFlow(t *testing.T) {
	st, path := testStore(t)
	seed(t, st, "Dentist", 9, 60)
	m := newAppModel(st, path)

	// Overlapping add: prompt, then decline.
	mAny, _ := m.Update(key('a'))
	m = mAny.(appModel)
	fillForm(&m, "Gym", 9, 30, "60")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.mode != modeConfirmOverlap {
		t.Fatalf("expected overlap confirm, got mode %v", m.mode)
	}
	if m.pendingConflict.Title != "Dentist" {
		t.Fatalf("prompt names %q, want Dentist", m.pendingConflict.Title)
	}

	mAny, _ = m.Update(key('n'))
	m = mAny.(appModel)
	if m.mode != modeList || st.Len() != 1 {
		t.Fatalf("decline must not mutate: mode=%v len=%d", m.mode, st.Len())
	}

	// Same add, accepted this time.
	mAny, _ = m.Update(key('a'))
	m = mAny.(appModel)
	fillForm(&m, "Gym", 9, 30, "60")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	mAny, _ = m.Update(key('y'))
	m = mAny.(appModel)

	if st.Len() != 2 {
		t.Fatalf("accept overlap: store size = %d, want 2", st.Len())
	}
	if len(m.list.Items()) != 2 {
		t.Fatalf("list rows = %d, want 2", len(m.list.Items()))
	}
}

func TestDeleteFlow(t *testing.T) {
	st, path := testStore(t)
	seed(t, st, "Eight", 8, 30)
	seed(t, st, "Nine", 9, 30)
	m := newAppModel(st, path)

	// Selection 0 is the earliest appointment in the sorted view.
	mAny, _ := m.Update(key('d'))
	m = mAny.(appModel)
	if m.mode != modeConfirmDelete || m.pendingDelete != 0 {
		t.Fatalf("expected delete confirm for index 0, got mode=%v idx=%d", m.mode, m.pendingDelete)
	}

	// Cancel first.
	mAny, _ = m.Update(key('n'))
	m = mAny.(appModel)
	if st.Len() != 2 {
		t.Fatalf("cancel mutated the store: %d", st.Len())
	}

	mAny, _ = m.Update(key('d'))
	m = mAny.(appModel)
	mAny, _ = m.Update(key('y'))
	m = mAny.(appModel)

	got := st.List()
	if len(got) != 1 || got[0].Title != "Nine" {
		t.Fatalf("unexpected remaining: %+v", got)
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("list rows = %d, want 1", len(m.list.Items()))
	}
}

func TestDelete_EmptyCollection(t *testing.T) {
	st, path := testStore(t)
	m := newAppModel(st, path)

	mAny, _ := m.Update(key('d'))
	m = mAny.(appModel)
	if m.mode != modeList {
		t.Fatalf("delete on empty collection must stay in list mode, got %v", m.mode)
	}
}

func TestQuit_SavesFirst(t *testing.T) {
	st, path := testStore(t)
	seed(t, st, "Dentist", 9, 30)
	m := newAppModel(st, path)

	mAny, cmd := m.Update(key('q'))
	m = mAny.(appModel)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.saveErr != nil {
		t.Fatalf("save on quit: %v", m.saveErr)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected saved file: %v", err)
	}
}
