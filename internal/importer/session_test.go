package importer

import (
	"reflect"
	"testing"
)

const sampleCSV = "Date,Amount,Memo\n2024-01-05,-42.50,Coffee\n2024-01-06,1000.00,Paycheck\n2024-01-07,-8.00,Bus"

func loadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if err := s.LoadText(sampleCSV); err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	return s
}

func TestSession_LoadResetsState(t *testing.T) {
	s := loadedSession(t)
	s.SetMapping("Date", FieldDate)
	s.Toggle(0)
	s.Toggle(2)
	s.SetAccount("acct-1")

	// A new file clears mapping and selection, keeps the account.
	if err := s.LoadText("H1,H2\nx,y"); err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if got := s.Selection(); len(got) != 0 {
		t.Errorf("Selection() after reload = %v, want empty", got)
	}
	if got := s.Mapping(); len(got) != 0 {
		t.Errorf("Mapping() after reload = %v, want empty", got)
	}
	if s.AccountID() != "acct-1" {
		t.Errorf("AccountID() = %q, want %q", s.AccountID(), "acct-1")
	}
	if s.State() != StateFileLoaded {
		t.Errorf("State() = %q, want %q", s.State(), StateFileLoaded)
	}
}

func TestSession_ToggleBounds(t *testing.T) {
	s := loadedSession(t)

	s.Toggle(-1)
	s.Toggle(3)
	if got := s.Selection(); len(got) != 0 {
		t.Errorf("Selection() = %v, want empty after out-of-range toggles", got)
	}

	s.Toggle(1)
	s.Toggle(0)
	if got := s.Selection(); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Selection() = %v, want [0 1] (ascending)", got)
	}

	s.Toggle(1)
	if got := s.Selection(); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("Selection() = %v, want [0] after re-toggle", got)
	}
}

func TestSession_SelectAllNone(t *testing.T) {
	s := loadedSession(t)

	s.SelectAll()
	if got := s.Selection(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Selection() = %v, want [0 1 2]", got)
	}

	s.SelectNone()
	if got := s.Selection(); len(got) != 0 {
		t.Errorf("Selection() = %v, want empty", got)
	}
}

func TestSession_StateTransitions(t *testing.T) {
	s := NewSession()
	if s.State() != StateIdle {
		t.Fatalf("State() = %q, want %q", s.State(), StateIdle)
	}

	if err := s.LoadText(sampleCSV); err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}
	if s.State() != StateFileLoaded {
		t.Fatalf("State() = %q, want %q", s.State(), StateFileLoaded)
	}

	s.SetMapping("Date", FieldDate)
	if s.State() != StateMapping {
		t.Errorf("State() = %q, want %q", s.State(), StateMapping)
	}

	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SetAccount("acct-1")
	s.SelectAll()
	if s.State() != StateReady {
		t.Errorf("State() = %q, want %q", s.State(), StateReady)
	}

	// Any invalidating change drops back to Mapping.
	s.SelectNone()
	if s.State() != StateMapping {
		t.Errorf("State() = %q, want %q after deselect", s.State(), StateMapping)
	}
}

func TestSession_CanSubmitTracksChanges(t *testing.T) {
	s := loadedSession(t)
	if s.CanSubmit() {
		t.Error("CanSubmit() = true on fresh load, want false")
	}

	s.SetMapping("Date", FieldDate)
	s.SetMapping("Amount", FieldAmount)
	s.SetMapping("Memo", FieldDescription)
	s.SelectAll()
	s.SetAccount("acct-1")
	if !s.CanSubmit() {
		t.Error("CanSubmit() = false with full mapping/selection/account, want true")
	}

	s.SetMapping("Amount", FieldSkip)
	if s.CanSubmit() {
		t.Error("CanSubmit() = true with amount unmapped, want false")
	}
	if got := s.MissingFields(); len(got) != 1 || got[0] != FieldAmount {
		t.Errorf("MissingFields() = %v, want [amount]", got)
	}
}
