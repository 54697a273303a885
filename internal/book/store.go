package book

import (
	"sort"

	"agenda-cli/internal/model"
)

// Store owns the in-memory appointment collection. It is the sole authority
// for mutation, ordering and persistence: callers read through List and
// mutate through Add/ForceAdd/Remove.
//
// The collection is kept sorted ascending by start time after every mutation.
// Stable sorting keeps insertion order for equal start times, so ties are
// deterministic per run.
//
// Store is not safe for concurrent use. The TUI drives it from the single
// bubbletea event loop; the CLI loads, mutates and saves within one command.
type Store struct {
	backend Backend
	appts   []model.Appointment
}

// New returns an empty Store persisting through backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Open resolves a backend for path and loads any existing collection.
// A missing target is not an error; the store starts empty.
func Open(path string) (*Store, error) {
	s := New(BackendForPath(path))
	if err := s.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// FindOverlap returns the first appointment (in collection order) whose
// half-open interval intersects the candidate's, or nil.
//
// Only the first conflict is reported even when several exist: the
// confirmation prompt names exactly one conflicting appointment.
func (s *Store) FindOverlap(candidate model.Appointment) *model.Appointment {
	for i := range s.appts {
		if candidate.Overlaps(s.appts[i]) {
			conflict := s.appts[i]
			return &conflict
		}
	}
	return nil
}

// Add inserts the candidate unless it overlaps an existing appointment.
// On conflict it returns the conflicting appointment and leaves the
// collection unchanged; the caller decides whether to follow up with
// ForceAdd.
func (s *Store) Add(candidate model.Appointment) *model.Appointment {
	if conflict := s.FindOverlap(candidate); conflict != nil {
		return conflict
	}
	s.ForceAdd(candidate)
	return nil
}

// ForceAdd inserts the candidate unconditionally and re-sorts.
func (s *Store) ForceAdd(candidate model.Appointment) {
	s.appts = append(s.appts, candidate)
	s.sortByStart()
}

// Remove deletes the entry at index in the current sorted view.
// The index must come from the most recent List (or the live view rendered
// from it); out-of-bounds indexes fail with *IndexError and change nothing.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.appts) {
		return &IndexError{Index: index, Size: len(s.appts)}
	}
	s.appts = append(s.appts[:index], s.appts[index+1:]...)
	return nil
}

// List returns a copy of the collection in ascending start order.
func (s *Store) List() []model.Appointment {
	out := make([]model.Appointment, len(s.appts))
	copy(out, s.appts)
	return out
}

// Len returns the number of appointments.
func (s *Store) Len() int { return len(s.appts) }

// Save writes the whole collection to the backend. A failure is reported as
// *IOError but the in-memory state stays authoritative: the mutation that
// triggered the save is never rolled back.
func (s *Store) Save() error {
	if err := s.backend.Save(s.List()); err != nil {
		return &IOError{Op: "save", Err: err}
	}
	return nil
}

// Load replaces the collection with the backend's contents. A missing target
// is success with the collection left as it was (default empty). Unreadable
// or unparseable content is reported without touching the collection.
func (s *Store) Load() error {
	appts, exists, err := s.backend.Load()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	s.appts = appts
	s.sortByStart()
	return nil
}

func (s *Store) sortByStart() {
	sort.SliceStable(s.appts, func(i, j int) bool {
		return s.appts[i].Start.Before(s.appts[j].Start)
	})
}
