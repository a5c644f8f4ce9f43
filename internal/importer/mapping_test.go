package importer

import (
	"reflect"
	"testing"
)

func TestFieldMapping_Set(t *testing.T) {
	headers := []string{"Date", "Amount", "Memo"}
	m := make(FieldMapping)

	if err := m.Set("Date", FieldDate, headers); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if m.FieldFor("Date") != FieldDate {
		t.Errorf("FieldFor(Date) = %q, want %q", m.FieldFor("Date"), FieldDate)
	}

	// Overwriting touches only that header.
	if err := m.Set("Memo", FieldDescription, headers); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Set("Date", FieldSkip, headers); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if m.FieldFor("Date") != FieldSkip {
		t.Errorf("FieldFor(Date) = %q, want %q", m.FieldFor("Date"), FieldSkip)
	}
	if m.FieldFor("Memo") != FieldDescription {
		t.Errorf("FieldFor(Memo) = %q, want %q after unrelated overwrite", m.FieldFor("Memo"), FieldDescription)
	}
}

func TestFieldMapping_SetRejectsUnknown(t *testing.T) {
	headers := []string{"Date"}
	m := make(FieldMapping)

	if err := m.Set("Nope", FieldDate, headers); err == nil {
		t.Error("Set() with unknown header: expected error, got nil")
	}
	if err := m.Set("Date", Field("payee"), headers); err == nil {
		t.Error("Set() with unknown field: expected error, got nil")
	}
}

func TestFieldMapping_UnmappedIsSkip(t *testing.T) {
	m := make(FieldMapping)
	if got := m.FieldFor("anything"); got != FieldSkip {
		t.Errorf("FieldFor on unmapped header = %q, want %q", got, FieldSkip)
	}
}

func TestFieldMapping_LastHeaderWins(t *testing.T) {
	// Two headers mapped to amount: the later one in header order wins.
	headers := []string{"Debit", "Credit"}
	m := make(FieldMapping)
	m.Set("Credit", FieldAmount, headers)
	m.Set("Debit", FieldAmount, headers)

	h, ok := m.headerFor(FieldAmount, headers)
	if !ok {
		t.Fatal("headerFor(amount) not found")
	}
	if h != "Credit" {
		t.Errorf("headerFor(amount) = %q, want %q (last in header order)", h, "Credit")
	}
}

func TestRequiredVocabulary(t *testing.T) {
	want := []Field{FieldDate, FieldAmount, FieldDescription}
	if !reflect.DeepEqual(Required(), want) {
		t.Errorf("Required() = %v, want %v", Required(), want)
	}
	for _, f := range Fields() {
		if !ValidField(string(f)) {
			t.Errorf("ValidField(%q) = false, want true", f)
		}
	}
}
