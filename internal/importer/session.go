package importer

import (
	"io"
	"sort"
	"sync"
)

// State is the lifecycle stage of an import session.
//
//	Idle -> FileLoaded -> Mapping <-> Ready -> Submitting -> Succeeded | Failed
//
// Any mapping, selection or account change re-runs the validator and moves
// the session between Mapping and Ready. Loading a new file returns to
// FileLoaded with mapping and selection cleared. A failed submission leaves
// the session intact so the user can fix the input and retry.
type State string

const (
	StateIdle       State = "idle"
	StateFileLoaded State = "file_loaded"
	StateMapping    State = "mapping"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Session holds all state for one CSV import: parsed headers and rows, the
// user's field mapping, the selected row set, and the destination account.
// A session is owned by a single logical flow; the mutex only guards against
// overlapping HTTP requests touching the same session.
type Session struct {
	mu sync.Mutex

	headers   []string
	rows      []Row
	mapping   FieldMapping
	selected  map[int]bool
	accountID string
	state     State
}

// NewSession returns an empty session in the Idle state.
func NewSession() *Session {
	return &Session{
		mapping:  make(FieldMapping),
		selected: make(map[int]bool),
		state:    StateIdle,
	}
}

// Load parses a new file into the session, unconditionally clearing any
// previous mapping and selection so stale row indices never survive a
// reload. The destination account choice is kept; it is independent of the
// loaded file.
func (s *Session) Load(r io.Reader, maxSize int64) error {
	headers, rows, err := Parse(r, maxSize)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers = headers
	s.rows = rows
	s.mapping = make(FieldMapping)
	s.selected = make(map[int]bool)
	s.state = StateFileLoaded
	return nil
}

// LoadText is Load for in-memory text, used by the CLI and tests.
func (s *Session) LoadText(text string) error {
	headers, rows, err := ParseText(text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers = headers
	s.rows = rows
	s.mapping = make(FieldMapping)
	s.selected = make(map[int]bool)
	s.state = StateFileLoaded
	return nil
}

// Headers returns the parsed header sequence in file order.
func (s *Session) Headers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.headers...)
}

// Rows returns the parsed rows.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Row(nil), s.rows...)
}

// RowCount returns the number of parsed data rows.
func (s *Session) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// SetMapping maps header to field. Unknown headers or fields are rejected.
func (s *Session) SetMapping(header string, field Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mapping.Set(header, field, s.headers); err != nil {
		return err
	}
	s.revalidate()
	return nil
}

// Mapping returns a copy of the current field mapping.
func (s *Session) Mapping() FieldMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := make(FieldMapping, len(s.mapping))
	for k, v := range s.mapping {
		m[k] = v
	}
	return m
}

// Toggle flips membership of index in the selection set. Out-of-range
// indices are ignored, preserving the invariant that every selected index is
// within [0, rowCount).
func (s *Session) Toggle(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rows) {
		return
	}
	if s.selected[index] {
		delete(s.selected, index)
	} else {
		s.selected[index] = true
	}
	s.revalidate()
}

// SelectAll selects every parsed row.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		s.selected[i] = true
	}
	s.revalidate()
}

// SelectNone clears the selection.
func (s *Session) SelectNone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int]bool)
	s.revalidate()
}

// Selection returns the selected row indices in ascending order. Submission
// iterates this slice, so submission order always equals ascending original
// row index order.
func (s *Session) Selection() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked()
}

func (s *Session) selectionLocked() []int {
	idx := make([]int, 0, len(s.selected))
	for i := range s.selected {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// SetAccount records the destination account for the import.
func (s *Session) SetAccount(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = accountID
	s.revalidate()
}

// AccountID returns the chosen destination account, "" if none.
func (s *Session) AccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID
}

// State returns the current lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CanSubmit re-runs the validator against the current session state.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CanSubmit(s.mapping, len(s.rows), len(s.selected), s.accountID)
}

// MissingFields lists required fields not yet covered by the mapping.
func (s *Session) MissingFields() []Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MissingFields(s.mapping)
}

// revalidate recomputes the Mapping/Ready stage after a state change.
// Submitting and terminal stages are managed by Submit.
func (s *Session) revalidate() {
	switch s.state {
	case StateIdle, StateSubmitting:
		return
	}
	if CanSubmit(s.mapping, len(s.rows), len(s.selected), s.accountID) {
		s.state = StateReady
	} else {
		s.state = StateMapping
	}
}
