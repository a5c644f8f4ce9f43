package importer

import (
	"testing"
	"time"
)

func TestManager_CreateGetRemove(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	m := NewManager(time.Hour, done)

	id, s := m.Create()
	if s == nil || id == "" {
		t.Fatal("Create() returned empty session or id")
	}

	got, err := m.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}

	m.Remove(id)
	if _, err := m.Get(id); err != ErrSessionNotFound {
		t.Errorf("Get() after Remove error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_UnknownID(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	m := NewManager(time.Hour, done)

	if _, err := m.Get("nope"); err != ErrSessionNotFound {
		t.Errorf("Get(nope) error = %v, want ErrSessionNotFound", err)
	}
}
