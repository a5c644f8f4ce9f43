package importer

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05", "2024-01-05T00:00:00.000Z"},
		{"01/06/2024", "2024-01-06T00:00:00.000Z"},
		{"1/6/2024", "2024-01-06T00:00:00.000Z"},
		{"Jan 5, 2024", "2024-01-05T00:00:00.000Z"},
		{"20240105", "2024-01-05T00:00:00.000Z"},
		{"2024-01-05T10:30:00Z", "2024-01-05T10:30:00.000Z"},
		// Two-digit years pivot into the past century when needed.
		{"1/5/99", "1999-01-05T00:00:00.000Z"},
		// Unparseable values pass through verbatim.
		{"not a date", "not a date"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseISODate(t *testing.T) {
	if _, ok := ParseISODate("2024-01-05T00:00:00.000Z"); !ok {
		t.Error("ParseISODate rejected canonical layout")
	}
	if _, ok := ParseISODate("2024-01-05"); !ok {
		t.Error("ParseISODate rejected date-only layout")
	}
	if _, ok := ParseISODate("yesterday"); ok {
		t.Error("ParseISODate accepted garbage")
	}
}
