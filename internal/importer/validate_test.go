package importer

import "testing"

func fullMapping() FieldMapping {
	return FieldMapping{
		"Date":   FieldDate,
		"Amount": FieldAmount,
		"Memo":   FieldDescription,
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name     string
		mapping  FieldMapping
		rows     int
		selected int
		account  string
		want     bool
	}{
		{"all satisfied", fullMapping(), 2, 2, "acct-1", true},
		{"no rows", fullMapping(), 0, 0, "acct-1", false},
		{"nothing selected", fullMapping(), 2, 0, "acct-1", false},
		{"no account", fullMapping(), 2, 2, "", false},
		{"amount unmapped", FieldMapping{"Date": FieldDate, "Memo": FieldDescription}, 2, 2, "acct-1", false},
		{"amount mapped to skip", FieldMapping{"Date": FieldDate, "Amount": FieldSkip, "Memo": FieldDescription}, 2, 2, "acct-1", false},
		{"category optional", FieldMapping{"Date": FieldDate, "Amount": FieldAmount, "Memo": FieldDescription, "Cat": FieldCategory}, 1, 1, "acct-1", true},
		{"empty mapping", FieldMapping{}, 2, 2, "acct-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanSubmit(tt.mapping, tt.rows, tt.selected, tt.account)
			if got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingFields(t *testing.T) {
	m := FieldMapping{"Date": FieldDate}
	missing := MissingFields(m)

	if len(missing) != 2 {
		t.Fatalf("len(missing) = %d, want 2", len(missing))
	}
	if missing[0] != FieldAmount || missing[1] != FieldDescription {
		t.Errorf("missing = %v, want [amount description]", missing)
	}

	if got := MissingFields(fullMapping()); len(got) != 0 {
		t.Errorf("MissingFields(full) = %v, want none", got)
	}
}
